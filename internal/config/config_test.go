package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Links.SpastePrefix)
	assert.NotEmpty(t, cfg.Links.OuoPrefix)
	assert.NotEmpty(t, cfg.Links.FcLcPrefix)
	assert.NotEmpty(t, cfg.Links.TorrentImage)
	assert.NotEmpty(t, cfg.Links.DDLImage)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestToTOMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowsBase = "https://host/shows/"
	cfg.TorrentsBase = "https://host/torrents/"
	cfg.EncoderName = "tester"
	cfg.StateFile = "/tmp/state.json"

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(cfg.ToTOML())))

	loaded := DefaultConfig()
	require.NoError(t, v.Unmarshal(loaded))

	assert.Equal(t, cfg.ShowsBase, loaded.ShowsBase)
	assert.Equal(t, cfg.TorrentsBase, loaded.TorrentsBase)
	assert.Equal(t, cfg.EncoderName, loaded.EncoderName)
	assert.Equal(t, cfg.StateFile, loaded.StateFile)
	assert.Equal(t, cfg.Links, loaded.Links)
	assert.Equal(t, cfg.Logging.Level, loaded.Logging.Level)
}

func TestStatePathOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StateFile = "/srv/postar/state.json"

	path, err := cfg.StatePath()
	require.NoError(t, err)
	assert.Equal(t, "/srv/postar/state.json", path)
}
