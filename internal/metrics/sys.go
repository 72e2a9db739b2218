package metrics

import (
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
)

// SysHealth is a point-in-time view of the process and its recipe data.
type SysHealth struct {
	AllocMB     uint64
	SysMB       uint64
	NumGC       uint32
	Goroutines  int
	DataDir     string
	DataFiles   int
	DataDirSize string
}

// GetSysHealth collects runtime memory stats and the size of the recipe data directory.
func GetSysHealth(dataDir string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	usage := scanDataDir(dataDir)
	return SysHealth{
		AllocMB:     m.Alloc / 1024 / 1024,
		SysMB:       m.Sys / 1024 / 1024,
		NumGC:       m.NumGC,
		Goroutines:  runtime.NumGoroutine(),
		DataDir:     dataDir,
		DataFiles:   usage.files,
		DataDirSize: humanize.IBytes(usage.bytes),
	}
}

type dirUsage struct {
	files int
	bytes uint64
}

// scanDataDir totals the regular files under dir. A missing or empty dir
// counts as zero.
func scanDataDir(dir string) dirUsage {
	var u dirUsage
	if dir == "" {
		return u
	}
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || !d.Type().IsRegular() {
			return err
		}
		if info, err := d.Info(); err == nil {
			u.files++
			u.bytes += uint64(info.Size())
		}
		return nil
	})
	return u
}
