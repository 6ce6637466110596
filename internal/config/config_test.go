package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanq16/workshopdl/internal/utils"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app_id: 1234
steamcmd_path: /opt/steamcmd/steamcmd.sh
username: pilot
install_dir: /tmp/steam
poll_interval: 25ms
http_timeout: 5s
retries: 1
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, uint32(1234), cfg.AppID)
	assert.Equal(t, "/opt/steamcmd/steamcmd.sh", cfg.SteamCMDPath)
	assert.Equal(t, "pilot", cfg.Username)
	assert.Equal(t, "/tmp/steam", cfg.InstallDir)
	assert.Equal(t, 25*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.HTTPClientConfig().MaxRetries)
	assert.Equal(t, utils.ToolUserAgent, cfg.UserAgent)
	require.NoError(t, cfg.Validate())
}

func TestDefaultDoesNotRetry(t *testing.T) {
	assert.Zero(t, Default().HTTPClientConfig().MaxRetries)
}

func TestLoadEnvironmentWins(t *testing.T) {
	path := writeConfig(t, "app_id: 1234\nusername: pilot\n")
	t.Setenv("WORKSHOPDL_APP_ID", "667970")
	t.Setenv("WORKSHOPDL_USERNAME", "wingman")
	t.Setenv("STEAM_API_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(667970), cfg.AppID)
	assert.Equal(t, "wingman", cfg.Username)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadInvalidEnvAppID(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("WORKSHOPDL_APP_ID", "vtol")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := writeConfig(t, "app_id: [not, a, number]\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) { c.InstallDir = "/tmp/steam" }},
		{name: "zero app id", mutate: func(c *Config) { c.InstallDir = "/tmp/steam"; c.AppID = 0 }, wantErr: true},
		{name: "zero poll interval", mutate: func(c *Config) { c.InstallDir = "/tmp/steam"; c.PollInterval = 0 }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.InstallDir = "/tmp/steam"; c.MaxRetries = -1 }, wantErr: true},
		{name: "no install dir", mutate: func(c *Config) { c.InstallDir = "" }, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
