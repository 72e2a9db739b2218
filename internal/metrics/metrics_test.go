package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.Observe(PipelineRun{Recipes: 2, Ingredients: 2, Score: 50, Available: true, Duration: time.Millisecond})
	r.Observe(PipelineRun{Recipes: 2, Ingredients: 2, Score: 50, Available: true, Cached: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.cacheMisses))
	assert.Equal(t, 50.0, testutil.ToFloat64(r.score))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.recipes))

	r.Observe(PipelineRun{})
	assert.Equal(t, 0.0, testutil.ToFloat64(r.score))

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "smart_pantry_pipeline_runs_total 3")
	assert.Contains(t, out, "# TYPE smart_pantry_pipeline_duration_seconds histogram")
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.Observe(PipelineRun{})
	assert.Equal(t, 1.0, testutil.ToFloat64(a.runs))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.runs))
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), bytes.Repeat([]byte("x"), 2048), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "custom"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "custom", "mine.yaml"), bytes.Repeat([]byte("x"), 1024), 0644))

	h := GetSysHealth(dir)
	assert.Equal(t, dir, h.DataDir)
	assert.Equal(t, 2, h.DataFiles)
	assert.Equal(t, "3.0 KiB", h.DataDirSize)
	assert.Positive(t, h.Goroutines)

	t.Run("no data dir", func(t *testing.T) {
		h := GetSysHealth("")
		assert.Zero(t, h.DataFiles)
		assert.Equal(t, "0 B", h.DataDirSize)
	})

	t.Run("missing data dir", func(t *testing.T) {
		h := GetSysHealth(filepath.Join(dir, "nope"))
		assert.Zero(t, h.DataFiles)
		assert.Equal(t, "0 B", h.DataDirSize)
	})
}
