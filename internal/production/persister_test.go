package production

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameTrace(t *testing.T, want, got Trace) {
	t.Helper()
	assert.Equal(t, want.RunID, got.RunID)
	assert.Equal(t, want.Seed, got.Seed)
	assert.Equal(t, want.Initial, got.Initial)
	assert.Equal(t, want.Config, got.Config)
	assert.Equal(t, want.Steps, got.Steps)
	assert.Equal(t, want.Transitions, got.Transitions)
	assert.True(t, want.Started.Equal(got.Started))
}

func TestPersisters(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	jp, err := NewJSONPersister(filepath.Join(dir, "json"))
	require.NoError(t, err)
	yp, err := NewYAMLPersister(filepath.Join(dir, "yaml"))
	require.NoError(t, err)

	tests := []struct {
		name string
		p    TracePersister
		path func(string) string
	}{
		{"json", jp, jp.Path},
		{"yaml", yp, yp.Path},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trace := recordRun(t, 11, 40, 5, 30)

			require.NoError(t, tt.p.Save(ctx, trace))
			assert.FileExists(t, tt.path(trace.RunID))

			loaded, err := tt.p.Load(ctx, trace.RunID)
			require.NoError(t, err)
			assertSameTrace(t, trace, loaded)

			fromFile, err := LoadTraceFile(tt.path(trace.RunID))
			require.NoError(t, err)
			assertSameTrace(t, trace, fromFile)

			_, err = tt.p.Load(ctx, "missing")
			assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
		})
	}
}

func TestLoadTraceFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTraceFile(filepath.Join(dir, "nope.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	txt := filepath.Join(dir, "trace.txt")
	require.NoError(t, os.WriteFile(txt, []byte("{}"), 0o644))
	_, err = LoadTraceFile(txt)
	assert.ErrorContains(t, err, "unknown trace format")

	// A trace whose config cannot drive a machine is rejected.
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("runID: x\nconfig:\n  sampleTime: 0\n"), 0o644))
	_, err = LoadTraceFile(bad)
	assert.ErrorContains(t, err, "config validation after load")
}
