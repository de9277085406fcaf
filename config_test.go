package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{name: "theme", key: "theme", value: "Light", check: func(t *testing.T, c *Config) {
			assert.Equal(t, "light", c.Theme)
		}},
		{name: "bad theme", key: "theme", value: "sepia", wantErr: true, check: func(t *testing.T, c *Config) {
			assert.Equal(t, "auto", c.Theme)
		}},
		{name: "detail alias", key: "detail", value: "mobile", check: func(t *testing.T, c *Config) {
			assert.Equal(t, DetailReduced, c.Detail)
		}},
		{name: "seed", key: "seed", value: "42", check: func(t *testing.T, c *Config) {
			assert.True(t, c.HasSeed)
			assert.Equal(t, uint64(42), c.Seed)
		}},
		{name: "fps out of range", key: "fps", value: "500", wantErr: true, check: func(t *testing.T, c *Config) {
			assert.Equal(t, defaultFPS, c.FPS)
		}},
		{name: "debounce", key: "debounce_ms", value: "35", check: func(t *testing.T, c *Config) {
			assert.Equal(t, 35*time.Millisecond, c.Debounce)
		}},
		{name: "negative debounce", key: "debounce_ms", value: "-1", wantErr: true},
		{name: "cell scale", key: "cell_scale", value: "2", check: func(t *testing.T, c *Config) {
			assert.Equal(t, 2, c.CellScale)
		}},
		{name: "spring", key: "pointer_spring", value: "TRUE", check: func(t *testing.T, c *Config) {
			assert.True(t, c.PointerSpring)
		}},
		{name: "log file under home", key: "log_file", value: "~/starfield.log", check: func(t *testing.T, c *Config) {
			assert.Equal(t, filepath.Join("/home/test", "starfield.log"), c.LogFile)
		}},
		{name: "unknown key", key: "colour", value: "blue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			err := c.set(tt.key, tt.value, "/home/test")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestLoadConfig_FileThenEnvironment(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	rc := "# starfield settings\ntheme=light\nfps=24\nseed=7\ncaption=false\ncell_scale=nope\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".starfieldrc"), []byte(rc), 0644))
	t.Setenv("STARFIELD_FPS", "12")

	cfg, problems := loadConfig()

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, 12, cfg.FPS, "environment wins over the rc file")
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.False(t, cfg.Caption)
	assert.Equal(t, 3, cfg.CellScale)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Error(), "cell_scale")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, problems := loadConfig()

	assert.Empty(t, problems)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestConfig_ResolveTheme(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, ThemeDark, c.resolveTheme(nil))
	assert.Equal(t, ThemeLight, c.resolveTheme(func() bool { return false }))

	c.Theme = "light"
	assert.Equal(t, ThemeLight, c.resolveTheme(func() bool { return true }))
}

func TestConfig_GetSavePath(t *testing.T) {
	c := defaultConfig()
	path, err := c.GetSavePath("frames")
	require.NoError(t, err)
	assert.Equal(t, "frames", path)

	c.SaveDirectory = filepath.Join(t.TempDir(), "out")
	path, err = c.GetSavePath("frames")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(c.SaveDirectory, "frames"), path)
	assert.DirExists(t, c.SaveDirectory)
}
