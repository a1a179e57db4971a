package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/OpticalFlyer/trellis/config"
	"github.com/OpticalFlyer/trellis/layout"
	"github.com/OpticalFlyer/trellis/mapview"
	"github.com/OpticalFlyer/trellis/scene"
	"github.com/OpticalFlyer/trellis/shapes"
	"github.com/OpticalFlyer/trellis/ui"
)

const aboutText = `Trellis shapefile viewer

Drag to pan. Scroll or pinch to zoom.
Arrow keys pan and +/- zoom once the map has focus.
F1 toggles layout debugging.`

// viewer is the widget tree: a toolbar above a split pane holding the
// layer list and the map, a floating feature window and the about dialog.
type viewer struct {
	stage *scene.Stage
	skin  *ui.Skin

	root      *layout.Table
	mapView   *mapview.MapView
	layerList *layout.Table
	split     *ui.SplitPane
	info      *ui.Window
	infoLabel *ui.Label
	about     *ui.Dialog
}

func newViewer(stage *scene.Stage, skin *ui.Skin, cfg config.Config, layers []*shapes.Layer) (*viewer, error) {
	v := &viewer{stage: stage, skin: skin}
	if err := v.buildMap(cfg); err != nil {
		return nil, err
	}

	v.layerList = layout.NewTable()
	v.layerList.Align(layout.TopLeft)
	v.layerList.Defaults().Left().PadBottom(layout.Fixed(4))
	for _, l := range layers {
		if err := v.addLayer(l); err != nil {
			return nil, err
		}
	}
	list, err := skin.NewScrollPane(v.layerList, "")
	if err != nil {
		return nil, err
	}
	list.SetScrollingDisabled(true, false)
	v.split, err = skin.NewSplitPane(list, v.mapView, false, "")
	if err != nil {
		return nil, err
	}
	v.split.SetSplit(0.25)
	v.split.SetMaxSplit(0.5)

	toolbar, err := v.buildToolbar(cfg)
	if err != nil {
		return nil, err
	}

	v.root = layout.NewTable()
	v.root.SetFillParent(true)
	v.root.SetRound(cfg.Round)
	v.root.Add(toolbar).GrowX().Pad(layout.Fixed(4)).Row()
	v.root.Add(v.split).Grow()
	stage.AddActor(v.root)

	if err := v.buildInfo(); err != nil {
		return nil, err
	}
	if err := v.buildAbout(); err != nil {
		return nil, err
	}
	v.setDebug(cfg.Debug)
	return v, nil
}

func (v *viewer) buildMap(cfg config.Config) error {
	background, err := ui.Get[scene.Drawable](v.skin, "map-background")
	if err != nil {
		return err
	}
	selection, err := ui.Get[color.Color](v.skin, "selection")
	if err != nil {
		return err
	}
	grid, err := ui.Get[color.Color](v.skin, "grid")
	if err != nil {
		return err
	}
	v.mapView = mapview.New(cfg.Map.Lat, cfg.Map.Lon, cfg.Map.Zoom, mapview.Style{
		Background: background,
		Selection:  selection,
		Grid:       grid,
	})
	v.mapView.OnSelect(v.showFeature)
	return nil
}

func (v *viewer) buildToolbar(cfg config.Config) (*layout.Table, error) {
	toolbar := layout.NewTable()
	toolbar.Defaults().PadRight(layout.Fixed(4))
	for _, b := range []struct {
		text string
		fn   func()
	}{
		{"Zoom in", v.mapView.ZoomIn},
		{"Zoom out", v.mapView.ZoomOut},
		{"Fit layers", v.fitLayers},
		{"About", v.showAbout},
	} {
		button, err := v.skin.NewTextButton(b.text, "")
		if err != nil {
			return nil, err
		}
		button.OnClick(b.fn)
		toolbar.Add(button)
	}

	grid, err := v.skin.NewCheckBox("Tile grid", "")
	if err != nil {
		return nil, err
	}
	grid.SetChecked(cfg.Debug)
	v.mapView.SetShowTileGrid(cfg.Debug)
	grid.OnClick(func() { v.mapView.SetShowTileGrid(grid.IsChecked()) })
	toolbar.Add(grid)
	toolbar.AddEmpty().ExpandX()
	return toolbar, nil
}

func (v *viewer) buildInfo() error {
	var err error
	v.info, err = v.skin.NewWindow("Feature", "")
	if err != nil {
		return err
	}
	v.infoLabel, err = v.skin.NewLabel("Click a feature", "")
	if err != nil {
		return err
	}
	v.infoLabel.SetAlignment(layout.TopLeft)
	v.info.Add(v.infoLabel).Grow().Pad(layout.Fixed(4))
	v.info.SetBounds(v.stage.Width()-264, 48, 240, 180)
	v.stage.AddActor(v.info)
	return nil
}

func (v *viewer) buildAbout() error {
	var err error
	v.about, err = v.skin.NewDialog("About", "dialog")
	if err != nil {
		return err
	}
	text, err := v.skin.NewLabel(aboutText, "")
	if err != nil {
		return err
	}
	ok, err := v.skin.NewTextButton("OK", "")
	if err != nil {
		return err
	}
	v.about.Text(text).Button(ok, true).Key(ebiten.KeyEscape, false)
	return nil
}

// addLayer adds l to the map and a check box toggling it to the layer list.
func (v *viewer) addLayer(l *shapes.Layer) error {
	ml := v.mapView.AddLayer(l, nil)
	toggle, err := v.skin.NewCheckBox(fmt.Sprintf("%s (%d)", l.Name, len(l.Features)), "")
	if err != nil {
		return err
	}
	toggle.SetChecked(true)
	toggle.OnClick(func() {
		ml.Visible = toggle.IsChecked()
		slog.Debug("layer visibility changed", "layer", l.Name, "visible", ml.Visible)
	})
	v.layerList.Add(toggle).Row()
	return nil
}

func (v *viewer) fitLayers() {
	b := shapes.EmptyBounds()
	for _, ml := range v.mapView.Layers() {
		if ml.Visible {
			b.Union(ml.Layer.Bounds)
		}
	}
	v.mapView.FitBounds(b)
}

func (v *viewer) showAbout() {
	if v.about.Stage() == nil {
		v.about.Show(v.stage)
	}
}

// showFeature lists the attributes of the selected feature.
func (v *viewer) showFeature(ml *mapview.MapLayer, feature int) {
	if ml == nil {
		v.infoLabel.SetText("Click a feature")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s #%d", ml.Layer.Name, feature)
	for i, name := range ml.Layer.Fields {
		fmt.Fprintf(&sb, "\n%s: %s", name, ml.Layer.Features[feature].Attributes[i])
	}
	v.infoLabel.SetText(sb.String())
}

// setDebug turns table debug lines on or off for the whole tree.
func (v *viewer) setDebug(debug bool) {
	v.stage.SetDebugAll(debug)
}
