package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Theme         string // dark, light or auto
	Detail        Detail
	Seed          uint64
	HasSeed       bool
	FPS           int
	Debounce      time.Duration
	CellScale     int
	PointerSpring bool
	Caption       bool
	LogFile       string
	LogLevel      string
	SaveDirectory string
}

func defaultConfig() *Config {
	return &Config{
		Theme:     "auto",
		Detail:    DetailAuto,
		FPS:       defaultFPS,
		Debounce:  pointerDebounce,
		CellScale: 3,
		Caption:   true,
		LogLevel:  "info",
	}
}

// loadConfig reads ~/.starfieldrc and then STARFIELD_* environment
// variables. Unknown keys are ignored; bad values keep the default and are
// reported in the returned error list.
func loadConfig() (*Config, []error) {
	config := defaultConfig()
	var problems []error

	homeDir, err := os.UserHomeDir()
	if err == nil {
		values, err := godotenv.Read(filepath.Join(homeDir, ".starfieldrc"))
		if err == nil {
			problems = append(problems, config.apply(values, homeDir)...)
		} else if !os.IsNotExist(err) {
			problems = append(problems, fmt.Errorf("read .starfieldrc: %w", err))
		}
	}

	env := map[string]string{}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, "STARFIELD_") {
			env[strings.TrimPrefix(key, "STARFIELD_")] = value
		}
	}
	problems = append(problems, config.apply(env, homeDir)...)
	return config, problems
}

func (c *Config) apply(values map[string]string, homeDir string) []error {
	var problems []error
	for key, value := range values {
		value = strings.TrimSpace(value)
		if err := c.set(strings.ToLower(strings.TrimSpace(key)), value, homeDir); err != nil {
			problems = append(problems, fmt.Errorf("config %s=%q: %w", key, value, err))
		}
	}
	return problems
}

func (c *Config) set(key, value, homeDir string) error {
	switch key {
	case "theme":
		switch v := strings.ToLower(value); v {
		case "dark", "light", "auto":
			c.Theme = v
		default:
			return fmt.Errorf("want dark, light or auto")
		}
	case "detail":
		d, err := parseDetail(value)
		if err != nil {
			return err
		}
		c.Detail = d
	case "seed":
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		c.Seed, c.HasSeed = seed, true
	case "fps":
		fps, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if fps < 1 || fps > 120 {
			return fmt.Errorf("fps out of range [1,120]")
		}
		c.FPS = fps
	case "debounce_ms", "debounce":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if ms < 0 {
			return fmt.Errorf("debounce must not be negative")
		}
		c.Debounce = time.Duration(ms) * time.Millisecond
	case "cell_scale", "cellscale":
		scale, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if scale < 1 || scale > 8 {
			return fmt.Errorf("cell scale out of range [1,8]")
		}
		c.CellScale = scale
	case "pointer_spring", "spring":
		c.PointerSpring = strings.ToLower(value) == "true"
	case "caption":
		c.Caption = strings.ToLower(value) == "true"
	case "log_file", "logfile":
		c.LogFile = expandHome(value, homeDir)
	case "log_level", "loglevel":
		c.LogLevel = strings.ToLower(value)
	case "savedirectory", "save_directory", "savedir":
		value = expandHome(value, homeDir)
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		c.SaveDirectory = value
	}
	return nil
}

func parseDetail(value string) (Detail, error) {
	switch strings.ToLower(value) {
	case "auto", "":
		return DetailAuto, nil
	case "full":
		return DetailFull, nil
	case "reduced", "mobile":
		return DetailReduced, nil
	}
	return DetailAuto, fmt.Errorf("want auto, full or reduced")
}

func expandHome(value, homeDir string) string {
	if homeDir != "" && strings.HasPrefix(value, "~") {
		return filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	return value
}

// resolveTheme turns the configured theme into a concrete one. probe
// answers whether the environment is dark and is only asked for auto.
func (c *Config) resolveTheme(probe func() bool) Theme {
	switch c.Theme {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	}
	if probe == nil || probe() {
		return ThemeDark
	}
	return ThemeLight
}

func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}
