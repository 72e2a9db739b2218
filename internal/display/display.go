// Package display renders plan views for terminals and chat-style markdown.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"smart-pantry/internal/app"
	"smart-pantry/internal/efficiency"
	"smart-pantry/internal/recipe"
	"smart-pantry/internal/shopping"
)

const meterWidth = 20

var (
	colorGood    = lipgloss.Color("#16a34a")
	colorWarn    = lipgloss.Color("#f97316")
	colorMuted   = lipgloss.Color("#6b7280")
	colorHeading = lipgloss.Color("#0f766e")
)

// FormatAmount prints a quantity without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Terminal renders views with lipgloss styles bound to its writer, so colours
// are dropped automatically when the writer is not a terminal.
type Terminal struct {
	w        io.Writer
	heading  lipgloss.Style
	category lipgloss.Style
	muted    lipgloss.Style
	good     lipgloss.Style
	warn     lipgloss.Style
}

// NewTerminal creates a renderer for w.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w:        w,
		heading:  r.NewStyle().Bold(true).Foreground(colorHeading),
		category: r.NewStyle().Bold(true).Underline(true),
		muted:    r.NewStyle().Foreground(colorMuted),
		good:     r.NewStyle().Bold(true).Foreground(colorGood),
		warn:     r.NewStyle().Bold(true).Foreground(colorWarn),
	}
}

// RenderCatalog prints one line per recipe, marking the selected ones.
func (t *Terminal) RenderCatalog(recipes []recipe.Recipe, selected func(id string) bool) {
	fmt.Fprintln(t.w, t.heading.Render("Recipes"))
	for _, r := range recipes {
		mark := " "
		if selected != nil && selected(r.ID) {
			mark = "x"
		}
		fmt.Fprintf(t.w, "[%s] %-10s %s %s\n", mark, r.ID, r.Title,
			t.muted.Render(fmt.Sprintf("(%d min, %d ingredients, %s)", r.PrepTime, len(r.Ingredients), strings.Join(r.Tags, ", "))))
	}
}

// RenderView prints the plan, the shopping list and the efficiency panel.
func (t *Terminal) RenderView(v app.View) {
	if len(v.Recipes) > 0 {
		fmt.Fprintln(t.w, t.heading.Render(fmt.Sprintf("Your Plan (%d)", len(v.Recipes))))
		for _, title := range v.Recipes {
			fmt.Fprintf(t.w, "  • %s\n", title)
		}
		fmt.Fprintln(t.w)
	}

	t.renderShoppingList(v)
	if v.Efficiency.Available {
		fmt.Fprintln(t.w)
		t.renderEfficiency(v.Efficiency)
	}
}

func (t *Terminal) renderShoppingList(v app.View) {
	fmt.Fprintln(t.w, t.heading.Render("Shopping List"))
	if v.Empty() {
		fmt.Fprintln(t.w, t.muted.Render(shopping.EmptyListMessage))
		return
	}
	for _, g := range v.Categories {
		fmt.Fprintln(t.w, t.category.Render(g.Category))
		for _, item := range g.Items {
			fmt.Fprintf(t.w, "  [ ] %-24s %s %s\n", item.Name,
				FormatAmount(shopping.DisplayAmount(item, v.DisplayMode)), item.Unit)
			fmt.Fprintf(t.w, "      %s\n", t.muted.Render("Used in: "+strings.Join(item.Recipes, ", ")))
		}
	}
}

func (t *Terminal) renderEfficiency(r efficiency.Report) {
	scoreStyle := t.warn
	if r.Rating() == efficiency.RatingGood {
		scoreStyle = t.good
	}
	fmt.Fprintf(t.w, "%s %s\n", t.heading.Render("Shopping Efficiency"), scoreStyle.Render(fmt.Sprintf("%d%%", r.Score)))
	fmt.Fprintln(t.w, Meter(r.Score, meterWidth))

	fmt.Fprintf(t.w, "%s %d Shared Ingredients\n", t.good.Render("✓"), len(r.MultiUse))
	if len(r.SingleUse) > 0 {
		fmt.Fprintf(t.w, "%s %d Single-Use Items\n", t.warn.Render("!"), len(r.SingleUse))
		fmt.Fprintf(t.w, "  %s\n", t.muted.Render("Consider adding recipes that use: "+strings.Join(r.Suggestions, ", ")+"..."))
	}
	if msg := r.TipMessage(); msg != "" {
		fmt.Fprintln(t.w)
		fmt.Fprintln(t.w, t.warn.Render("Reduce Waste Tip"))
		fmt.Fprintln(t.w, msg)
	}
}

// Meter draws a fixed-width progress bar for a 0-100 score.
func Meter(score, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// FormatMarkdown returns the shopping list and the efficiency summary as two
// markdown messages, ready for a chat client.
func FormatMarkdown(v app.View) (string, string) {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	if v.Empty() {
		sb.WriteString("_" + shopping.EmptyListMessage + "_\n")
	}
	for _, g := range v.Categories {
		sb.WriteString(fmt.Sprintf("*%s*\n", g.Category))
		for _, item := range g.Items {
			sb.WriteString(fmt.Sprintf("• %s: %s %s _(%s)_\n", item.Name,
				FormatAmount(shopping.DisplayAmount(item, v.DisplayMode)), item.Unit, strings.Join(item.Recipes, ", ")))
		}
		sb.WriteString("\n")
	}

	r := v.Efficiency
	if !r.Available {
		return sb.String(), ""
	}

	var eb strings.Builder
	icon := "🟠"
	if r.Rating() == efficiency.RatingGood {
		icon = "🟢"
	}
	eb.WriteString(fmt.Sprintf("%s *Shopping Efficiency:* %d%%\n", icon, r.Score))
	eb.WriteString(fmt.Sprintf("✅ %d shared ingredients\n", len(r.MultiUse)))
	if len(r.SingleUse) > 0 {
		eb.WriteString(fmt.Sprintf("⚠️ %d single-use items\n", len(r.SingleUse)))
	}
	if msg := r.TipMessage(); msg != "" {
		eb.WriteString(fmt.Sprintf("\n🌿 _%s_\n", msg))
	}
	return sb.String(), eb.String()
}
