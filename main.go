package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

func main() {
	cfg, problems := loadConfig()

	exportDir := flag.String("export", "", "render frames to PNG files in this directory instead of the terminal")
	frames := flag.Int("frames", 60, "number of frames to export")
	width := flag.Int("width", 800, "export surface width in pixels")
	height := flag.Int("height", 600, "export surface height in pixels")
	theme := flag.String("theme", cfg.Theme, "dark, light or auto")
	detail := flag.String("detail", cfg.Detail.String(), "auto, full or reduced")
	seed := flag.String("seed", "", "random seed for reproducible fields")
	fps := flag.Int("fps", cfg.FPS, "frames per second")
	flag.Parse()

	overrides := map[string]string{
		"theme":  *theme,
		"detail": *detail,
		"fps":    strconv.Itoa(*fps),
	}
	if *seed != "" {
		overrides["seed"] = *seed
	}
	problems = append(problems, cfg.apply(overrides, "")...)

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	for _, problem := range problems {
		logger.Warn("ignoring configuration value", zap.Error(problem))
	}

	if *exportDir != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		paths, err := exportFrames(ctx, cfg, exportOptions{
			Dir:    *exportDir,
			Frames: *frames,
			Width:  *width,
			Height: *height,
			Theme:  cfg.resolveTheme(nil),
		}, logger)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d frames\n", len(paths))
		return
	}

	p := tea.NewProgram(
		newViewer(cfg, logger, cfg.resolveTheme(lipgloss.HasDarkBackground)),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
