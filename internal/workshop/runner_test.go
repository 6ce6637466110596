package workshop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/workshopdl/internal/decode"
	"github.com/tanq16/workshopdl/internal/steam"
	"github.com/tanq16/workshopdl/internal/steam/steamtest"
	"github.com/tanq16/workshopdl/internal/utils"
)

var originalConfig = []byte("loadout = [aim9, aim120, gun]\n")

func installItem(t *testing.T, fake *steamtest.Client) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.cfgb"), decode.Encode(originalConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("read me"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, decode.ItemInfoFile), []byte("<xml/>"), 0644))
	fake.Installs[testItem] = steam.InstallInfo{Folder: dir}
	return dir
}

func answer(t *testing.T, yes bool, asked *string) Prompter {
	return func(question string, def bool) (bool, error) {
		assert.True(t, def)
		*asked = question
		return yes, nil
	}
}

func newJob(out string, preserve bool) utils.WorkshopJob {
	return utils.WorkshopJob{ID: "test", WorkshopID: uint64(testItem), OutputPath: out, PreserveEncoded: preserve}
}

func TestRunDownloadsAndDecodes(t *testing.T) {
	fake := newFakeClient(t)
	installItem(t, fake)
	out := filepath.Join(t.TempDir(), "decoded")
	var asked string

	res, err := NewRunner(fake, answer(t, true, &asked)).Run(testContext(t), newJob(out, false))
	require.NoError(t, err)
	assert.Equal(t, "Download this file? (1.50MiB)", asked)
	assert.Len(t, res.Decoded, 1)

	data, err := os.ReadFile(filepath.Join(out, "model.cfg"))
	require.NoError(t, err)
	assert.Equal(t, originalConfig, data)
	data, err = os.ReadFile(filepath.Join(out, "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("read me"), data)
	assert.NoFileExists(t, filepath.Join(out, "model.cfgb"))
	assert.NoFileExists(t, filepath.Join(out, decode.ItemInfoFile))
	assert.Equal(t, 0, fake.Subscribers())
}

func TestRunPreserveEncoded(t *testing.T) {
	fake := newFakeClient(t)
	installItem(t, fake)
	out := t.TempDir()
	var asked string

	_, err := NewRunner(fake, answer(t, true, &asked)).Run(testContext(t), newJob(out, true))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "model.cfg"))
	assert.FileExists(t, filepath.Join(out, "model.cfgb"))
	assert.FileExists(t, filepath.Join(out, "readme.txt"))
	assert.NoFileExists(t, filepath.Join(out, decode.ItemInfoFile))
}

func TestRunDeclinedCopiesNothing(t *testing.T) {
	fake := newFakeClient(t)
	installItem(t, fake)
	out := t.TempDir()
	var asked string

	_, err := NewRunner(fake, answer(t, false, &asked)).Run(testContext(t), newJob(out, false))
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, IsTolerated(err))
	assert.Equal(t, 0, fake.Calls("DownloadItem"))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunDeclinedDoesNotCreateOutput(t *testing.T) {
	fake := newFakeClient(t)
	installItem(t, fake)
	out := filepath.Join(t.TempDir(), "never")
	var asked string

	_, err := NewRunner(fake, answer(t, false, &asked)).Run(testContext(t), newJob(out, false))
	assert.ErrorIs(t, err, ErrCancelled)
	assert.NoDirExists(t, out)
}

func TestRunAssumeYesSkipsPrompt(t *testing.T) {
	fake := newFakeClient(t)
	installItem(t, fake)
	job := newJob(t.TempDir(), false)
	job.AssumeYes = true
	prompt := func(string, bool) (bool, error) {
		t.Fatal("prompt should not be shown")
		return false, nil
	}

	_, err := NewRunner(fake, prompt).Run(testContext(t), job)
	require.NoError(t, err)
}

func TestRunToleratedFailures(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(t *testing.T, fake *steamtest.Client)
		wantErr error
	}{
		{
			name:    "download rejected",
			setup:   func(t *testing.T, fake *steamtest.Client) { installItem(t, fake); fake.RejectDownload = true },
			wantErr: ErrDownloadNotStarted,
		},
		{
			name:    "no install info",
			setup:   func(t *testing.T, fake *steamtest.Client) { fake.DownloadResult = steam.ResultFail },
			wantErr: ErrNoInstallInfo,
		},
		{
			name:    "unknown item",
			setup:   func(t *testing.T, fake *steamtest.Client) { delete(fake.Items, testItem) },
			wantErr: ErrQueryFailed,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := newFakeClient(t)
			tc.setup(t, fake)
			out := filepath.Join(t.TempDir(), "out")
			var asked string

			_, err := NewRunner(fake, answer(t, true, &asked)).Run(testContext(t), newJob(out, false))
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, IsTolerated(err))
			assert.NoDirExists(t, out)
		})
	}
}
