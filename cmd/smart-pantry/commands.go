package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"smart-pantry/internal/app"
	"smart-pantry/internal/config"
	"smart-pantry/internal/display"
	"smart-pantry/internal/logging"
	"smart-pantry/internal/metrics"
	"smart-pantry/internal/planner"
	"smart-pantry/internal/recipe"
	"smart-pantry/internal/storage"
)

const name = "smart-pantry"

const (
	formatText     = "text"
	formatMarkdown = "markdown"
	formatYAML     = "yaml"
	formatJSON     = "json"
)

func newRootCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Plan meals and build a shared shopping list",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "catalog",
				Usage: "Path to a YAML recipe catalog (overrides SMART_PANTRY_CATALOG)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error), overrides LOG_LEVEL",
			},
		},
		Commands: []*cli.Command{
			recipesCmd(out),
			planCmd(out),
		},
	}
}

func recipesCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "recipes",
		Usage: "List the recipe catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: formatText,
				Usage: "Output format (text, yaml, json)",
			},
			&cli.StringFlag{
				Name:  "tag",
				Usage: "Only list recipes carrying this tag, e.g. Mexican, Healthy or Custom",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, _, err := setup(cmd)
			if err != nil {
				return err
			}
			catalog := filterByTag(a.Store().Catalog(), cmd.String("tag"))

			switch f := cmd.String("format"); f {
			case formatText:
				display.NewTerminal(out).RenderCatalog(catalog, a.Store().IsSelected)
				return nil
			case formatYAML, formatJSON:
				return encode(out, f, catalog)
			default:
				return fmt.Errorf("unknown output format: %q", f)
			}
		},
	}
}

func planCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Select recipes and print the shopping list with its efficiency score",
		Description: `Selected recipes are aggregated in the order given. Ingredients with
the same name (ignoring case) are merged, grouped by category and scored by
how many of them are used by more than one recipe.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "select",
				Aliases: []string{"s"},
				Usage:   "Recipe id to add to the plan (repeatable)",
			},
			&cli.StringFlag{
				Name:  "custom",
				Usage: "YAML file with custom recipes to add to the catalog and select",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: formatText,
				Usage: "Output format (text, markdown, yaml, json)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print pipeline metrics and process health after the plan",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := cmd.String("format")
			switch format {
			case formatText, formatMarkdown, formatYAML, formatJSON:
			default:
				return fmt.Errorf("unknown output format: %q", format)
			}

			a, cfg, err := setup(cmd)
			if err != nil {
				return err
			}

			for _, id := range cmd.StringSlice("select") {
				if _, err := a.Select(id); err != nil {
					return fmt.Errorf("failed to select recipe: %w", err)
				}
			}

			if path := cmd.String("custom"); path != "" {
				customs, err := storage.LoadCustomRecipes(path)
				if err != nil {
					return err
				}
				for _, r := range customs {
					if _, err := a.AddCustom(r); err != nil {
						return err
					}
				}
			}

			view := a.Evaluate()
			if err := writeView(out, format, view); err != nil {
				return err
			}

			if cmd.Bool("metrics") {
				return writeMetrics(out, a, cfg.DataDir)
			}
			return nil
		},
	}
}

// filterByTag keeps the recipes carrying tag. An empty tag or "all" keeps
// everything.
func filterByTag(recipes []recipe.Recipe, tag string) []recipe.Recipe {
	if tag == "" || strings.EqualFold(tag, "all") {
		return recipes
	}
	out := make([]recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}

// setup loads configuration and the catalog and wires the app.
func setup(cmd *cli.Command) (*app.App, *config.Config, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if p := cmd.String("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	log := logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)

	file := storage.NewCatalogFile(cfg.CatalogPath)
	if !file.Exists() {
		return nil, nil, fmt.Errorf("catalog file %s does not exist", file.Path())
	}
	catalog, err := file.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := planner.NewStore(catalog, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize recipe store: %w", err)
	}

	log.Debug("app ready",
		"catalog", file.Path(),
		"recipes", len(catalog),
		"displayMode", cfg.DisplayMode)

	return app.NewApp(store, cfg.DisplayMode, metrics.NewRecorder(), log), cfg, nil
}

func writeView(out io.Writer, format string, v app.View) error {
	switch format {
	case formatMarkdown:
		list, summary := display.FormatMarkdown(v)
		if _, err := fmt.Fprint(out, list); err != nil {
			return err
		}
		if summary != "" {
			_, err := fmt.Fprint(out, "\n"+summary)
			return err
		}
		return nil
	case formatYAML, formatJSON:
		return encode(out, format, v)
	default:
		display.NewTerminal(out).RenderView(v)
		return nil
	}
}

func writeMetrics(out io.Writer, a *app.App, dataDir string) error {
	fmt.Fprintln(out)
	if err := a.Recorder().WriteText(out); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	h := metrics.GetSysHealth(dataDir)
	fmt.Fprintf(out, "\n# process: alloc=%dMB sys=%dMB gc=%d goroutines=%d\n",
		h.AllocMB, h.SysMB, h.NumGC, h.Goroutines)
	fmt.Fprintf(out, "# data: dir=%s files=%d size=%s\n", h.DataDir, h.DataFiles, h.DataDirSize)
	return nil
}

func encode(out io.Writer, format string, v any) error {
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush %s output: %w", format, err)
	}
	return nil
}
