package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/workshopdl/internal/decode"
	"github.com/tanq16/workshopdl/internal/workshop"
)

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Cancelled.", describe(workshop.ErrCancelled))
	assert.Equal(t, "Failed to get file details.", describe(fmt.Errorf("%w: boom", workshop.ErrQueryFailed)))
	assert.Equal(t, "Failed to start download. (Are you logged in to Steam?)", describe(workshop.ErrDownloadNotStarted))
	assert.Contains(t, describe(workshop.ErrNoInstallInfo), "downloaded file info")
	assert.Equal(t, "other", describe(errors.New("other")))
}

func TestExitOnErrorToleratedReturns(t *testing.T) {
	exitOnError(nil)
	exitOnError(workshop.ErrCancelled)
}

func TestDecodeCommandInPlace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.cfgb"), decode.Encode([]byte("cfg")), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, decode.ItemInfoFile), nil, 0644))

	rootCmd.SetArgs([]string{"decode", dir})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "model.cfg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("cfg"), data)
	assert.NoFileExists(t, filepath.Join(dir, "model.cfgb"))
	assert.NoFileExists(t, filepath.Join(dir, decode.ItemInfoFile))
}

func TestDecodeCommandWithOutput(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "model.cfgb"), decode.Encode([]byte("cfg")), 0644))
	out := filepath.Join(t.TempDir(), "decoded")

	rootCmd.SetArgs([]string{"decode", src, "--output", out, "-P"})
	require.NoError(t, rootCmd.Execute())

	assert.FileExists(t, filepath.Join(out, "model.cfg"))
	assert.FileExists(t, filepath.Join(out, "model.cfgb"))
	assert.FileExists(t, filepath.Join(src, "model.cfgb"))
	assert.NoFileExists(t, filepath.Join(src, "model.cfg"))
}
