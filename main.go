package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/OpticalFlyer/trellis/config"
	"github.com/OpticalFlyer/trellis/scene"
	"github.com/OpticalFlyer/trellis/shapes"
	"github.com/OpticalFlyer/trellis/ui"
)

// Trellis implements ebiten.Game interface.
type Trellis struct {
	stage  *scene.Stage
	viewer *viewer
	debug  bool
}

func (g *Trellis) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.viewer.setDebug(g.debug)
	}
	return g.stage.Update()
}

func (g *Trellis) Draw(screen *ebiten.Image) {
	g.stage.Draw(screen)
	if !g.debug {
		return
	}
	m := g.viewer.mapView
	lat, lon := m.Center()
	tiles := m.VisibleTiles()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s\nLat: %.4f\nLon: %.4f\nZoom: %d\nTiles: %d,%d - %d,%d",
		g.stage.DebugInfo(), lat, lon, m.Zoom(),
		tiles.MinX, tiles.MinY, tiles.MaxX, tiles.MaxY), 0, screen.Bounds().Dy()-96)
}

func (g *Trellis) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := float64(outsideWidth), float64(outsideHeight)
	if w != g.stage.Width() || h != g.stage.Height() {
		g.stage.SetViewport(w, h)
	}
	return outsideWidth, outsideHeight
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func loadSkin(path string) (*ui.Skin, error) {
	if path == "" {
		return ui.DefaultSkin()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening skin: %w", err)
	}
	defer f.Close()
	return ui.LoadSkin(f)
}

func main() {
	configPath := flag.String("config", "", "path to a TOML configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Layers = append(cfg.Layers, flag.Args()...)

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	skin, err := loadSkin(cfg.Skin)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	layers, err := shapes.LoadLayers(ctx, cfg.Layers)
	stop()
	if err != nil {
		log.Fatal(err)
	}
	for _, l := range layers {
		slog.Info("layer loaded", "layer", l.Name, "features", len(l.Features), "skipped", l.Skipped)
	}

	stage := scene.NewStage(float64(cfg.Window.Width), float64(cfg.Window.Height))
	v, err := newViewer(stage, skin, cfg, layers)
	if err != nil {
		log.Fatal(err)
	}
	if len(layers) > 0 {
		v.root.Validate()
		v.fitLayers()
	}

	app := &Trellis{stage: stage, viewer: v, debug: cfg.Debug}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
