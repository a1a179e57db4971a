package ui

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/OpticalFlyer/trellis/scene"
)

//go:embed default.toml
var defaultSkinTOML []byte

// DefaultSkin returns the built-in skin. It has a "default" style of every
// widget, a "fixed" label style using the bitmap font, a "toggle" button
// style and a "dialog" window style.
func DefaultSkin() (*Skin, error) {
	return LoadSkin(bytes.NewReader(defaultSkinTOML))
}

// Skin documents are TOML. Colors are "#rrggbb" or "#rrggbbaa" literals or
// names from [colors]; other references name an entry of another table.
//
//	[colors]
//	text = "#f0f0f0"
//
//	[fonts.default]
//	size = 14
//
//	[drawables.panel]
//	color = "#646464c8"
//	pad = [4, 4, 4, 4]   # top, right, bottom, left
//
//	[label.default]
//	font = "default"
//	color = "text"
type skinFile struct {
	Colors      map[string]string        `toml:"colors"`
	Fonts       map[string]fontDef       `toml:"fonts"`
	Drawables   map[string]drawableDef   `toml:"drawables"`
	Labels      map[string]labelDef      `toml:"label"`
	Buttons     map[string]buttonDef     `toml:"button"`
	TextButtons map[string]textButtonDef `toml:"text-button"`
	CheckBoxes  map[string]checkBoxDef   `toml:"check-box"`
	Windows     map[string]windowDef     `toml:"window"`
	ScrollPanes map[string]scrollPaneDef `toml:"scroll-pane"`
	SplitPanes  map[string]splitPaneDef  `toml:"split-pane"`
}

type fontDef struct {
	// Size in pixels of Go Regular.
	Size float64 `toml:"size"`
	// Fixed selects the 7x13 bitmap font instead.
	Fixed bool `toml:"fixed"`
}

type drawableDef struct {
	Color       string    `toml:"color"`
	Border      string    `toml:"border"`
	BorderWidth float64   `toml:"border-width"`
	Lighten     float64   `toml:"lighten"`
	Darken      float64   `toml:"darken"`
	Pad         []float64 `toml:"pad"`
	MinSize     []float64 `toml:"min-size"`
}

type labelDef struct {
	Font       string `toml:"font"`
	Color      string `toml:"color"`
	Background string `toml:"background"`
}

type buttonDef struct {
	Up            string    `toml:"up"`
	Over          string    `toml:"over"`
	Down          string    `toml:"down"`
	Checked       string    `toml:"checked"`
	CheckedOver   string    `toml:"checked-over"`
	Disabled      string    `toml:"disabled"`
	PressedOffset []float64 `toml:"pressed-offset"`
}

type textButtonDef struct {
	Button            string `toml:"button"`
	Font              string `toml:"font"`
	FontColor         string `toml:"font-color"`
	OverFontColor     string `toml:"over-font-color"`
	DownFontColor     string `toml:"down-font-color"`
	CheckedFontColor  string `toml:"checked-font-color"`
	DisabledFontColor string `toml:"disabled-font-color"`
}

type checkBoxDef struct {
	textButtonDef
	CheckboxOn          string  `toml:"checkbox-on"`
	CheckboxOff         string  `toml:"checkbox-off"`
	CheckboxOver        string  `toml:"checkbox-over"`
	CheckboxOnDisabled  string  `toml:"checkbox-on-disabled"`
	CheckboxOffDisabled string  `toml:"checkbox-off-disabled"`
	Spacing             float64 `toml:"spacing"`
}

type windowDef struct {
	Background      string `toml:"background"`
	TitleBackground string `toml:"title-background"`
	TitleFont       string `toml:"title-font"`
	TitleFontColor  string `toml:"title-font-color"`
	StageBackground string `toml:"stage-background"`
	DockPreview     string `toml:"dock-preview"`
}

type scrollPaneDef struct {
	Background  string `toml:"background"`
	HScroll     string `toml:"h-scroll"`
	HScrollKnob string `toml:"h-scroll-knob"`
	VScroll     string `toml:"v-scroll"`
	VScrollKnob string `toml:"v-scroll-knob"`
}

type splitPaneDef struct {
	Handle string `toml:"handle"`
}

// LoadSkin reads a skin document. Unknown keys are an error.
func LoadSkin(r io.Reader) (*Skin, error) {
	var f skinFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decoding skin: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decoding skin: unknown keys %v", undecoded)
	}
	l := &skinLoader{skin: NewSkin()}
	for _, load := range []func(*skinFile) error{
		l.loadColors,
		l.loadFonts,
		l.loadDrawables,
		l.loadStyles,
	} {
		if err := load(&f); err != nil {
			return nil, err
		}
	}
	return l.skin, nil
}

type skinLoader struct {
	skin *Skin
}

func (l *skinLoader) loadColors(f *skinFile) error {
	for name, hex := range f.Colors {
		c, err := ParseColor(hex)
		if err != nil {
			return fmt.Errorf("skin color %q: %w", name, err)
		}
		l.skin.Add(name, c)
	}
	return nil
}

func (l *skinLoader) loadFonts(f *skinFile) error {
	for name, def := range f.Fonts {
		if def.Fixed {
			l.skin.Add(name, FixedFont())
			continue
		}
		if def.Size <= 0 {
			return fmt.Errorf("skin font %q: size must be positive", name)
		}
		face, err := RegularFont(def.Size)
		if err != nil {
			return fmt.Errorf("skin font %q: %w", name, err)
		}
		l.skin.Add(name, face)
	}
	return nil
}

func (l *skinLoader) loadDrawables(f *skinFile) error {
	for name, def := range f.Drawables {
		d, err := l.newDrawable(def)
		if err != nil {
			return fmt.Errorf("skin drawable %q: %w", name, err)
		}
		l.skin.Add(name, d)
	}
	return nil
}

func (l *skinLoader) newDrawable(def drawableDef) (*ColorDrawable, error) {
	d := &ColorDrawable{BorderWidth: def.BorderWidth}
	var err error
	if d.Color, err = l.color(def.Color); err != nil {
		return nil, err
	}
	if d.BorderColor, err = l.color(def.Border); err != nil {
		return nil, err
	}
	if d.Color != nil && def.Lighten > 0 {
		d.Color = Blend(d.Color, colorful.Color{R: 1, G: 1, B: 1}, def.Lighten)
	}
	if d.Color != nil && def.Darken > 0 {
		d.Color = Blend(d.Color, colorful.Color{}, def.Darken)
	}
	switch len(def.Pad) {
	case 0:
	case 1:
		p := def.Pad[0]
		d.Insets = Insets{Top: p, Right: p, Bottom: p, Left: p}
	case 4:
		d.Insets = Insets{Top: def.Pad[0], Right: def.Pad[1], Bottom: def.Pad[2], Left: def.Pad[3]}
	default:
		return nil, fmt.Errorf("pad needs 1 or 4 values, got %d", len(def.Pad))
	}
	switch len(def.MinSize) {
	case 0:
	case 2:
		d.Width, d.Height = def.MinSize[0], def.MinSize[1]
	default:
		return nil, fmt.Errorf("min-size needs 2 values, got %d", len(def.MinSize))
	}
	return d, nil
}

func (l *skinLoader) loadStyles(f *skinFile) error {
	for name, def := range f.Labels {
		st, err := l.labelStyle(def)
		if err != nil {
			return fmt.Errorf("skin label style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.Buttons {
		st, err := l.buttonStyle(def)
		if err != nil {
			return fmt.Errorf("skin button style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.TextButtons {
		st, err := l.textButtonStyle(def)
		if err != nil {
			return fmt.Errorf("skin text button style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.CheckBoxes {
		st, err := l.checkBoxStyle(def)
		if err != nil {
			return fmt.Errorf("skin check box style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.Windows {
		st, err := l.windowStyle(def)
		if err != nil {
			return fmt.Errorf("skin window style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.ScrollPanes {
		st := &ScrollPaneStyle{}
		if err := l.drawables(
			ref{def.Background, &st.Background},
			ref{def.HScroll, &st.HScroll},
			ref{def.HScrollKnob, &st.HScrollKnob},
			ref{def.VScroll, &st.VScroll},
			ref{def.VScrollKnob, &st.VScrollKnob},
		); err != nil {
			return fmt.Errorf("skin scroll pane style %q: %w", name, err)
		}
		l.skin.Add(name, st)
	}
	for name, def := range f.SplitPanes {
		st := &SplitPaneStyle{}
		if err := l.drawables(ref{def.Handle, &st.Handle}); err != nil {
			return fmt.Errorf("skin split pane style %q: %w", name, err)
		}
		if st.Handle == nil {
			return fmt.Errorf("skin split pane style %q: missing handle", name)
		}
		l.skin.Add(name, st)
	}
	return nil
}

func (l *skinLoader) labelStyle(def labelDef) (*LabelStyle, error) {
	font, err := l.font(def.Font)
	if err != nil {
		return nil, err
	}
	clr, err := l.color(def.Color)
	if err != nil {
		return nil, err
	}
	st := &LabelStyle{Font: font, Color: clr}
	return st, l.drawables(ref{def.Background, &st.Background})
}

func (l *skinLoader) buttonStyle(def buttonDef) (*ButtonStyle, error) {
	st := &ButtonStyle{}
	if err := l.drawables(
		ref{def.Up, &st.Up},
		ref{def.Over, &st.Over},
		ref{def.Down, &st.Down},
		ref{def.Checked, &st.Checked},
		ref{def.CheckedOver, &st.CheckedOver},
		ref{def.Disabled, &st.Disabled},
	); err != nil {
		return nil, err
	}
	switch len(def.PressedOffset) {
	case 0:
	case 2:
		st.PressedOffsetX, st.PressedOffsetY = def.PressedOffset[0], def.PressedOffset[1]
	default:
		return nil, fmt.Errorf("pressed-offset needs 2 values, got %d", len(def.PressedOffset))
	}
	return st, nil
}

func (l *skinLoader) textButtonStyle(def textButtonDef) (*TextButtonStyle, error) {
	st := &TextButtonStyle{}
	if def.Button != "" {
		base, err := Get[*ButtonStyle](l.skin, def.Button)
		if err != nil {
			return nil, err
		}
		st.ButtonStyle = *base
	}
	var err error
	if st.Font, err = l.font(def.Font); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		ref string
		dst *color.Color
	}{
		{def.FontColor, &st.FontColor},
		{def.OverFontColor, &st.OverFontColor},
		{def.DownFontColor, &st.DownFontColor},
		{def.CheckedFontColor, &st.CheckedFontColor},
		{def.DisabledFontColor, &st.DisabledFontColor},
	} {
		if *c.dst, err = l.color(c.ref); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func (l *skinLoader) checkBoxStyle(def checkBoxDef) (*CheckBoxStyle, error) {
	tb, err := l.textButtonStyle(def.textButtonDef)
	if err != nil {
		return nil, err
	}
	st := &CheckBoxStyle{TextButtonStyle: *tb, Spacing: def.Spacing}
	if err := l.drawables(
		ref{def.CheckboxOn, &st.CheckboxOn},
		ref{def.CheckboxOff, &st.CheckboxOff},
		ref{def.CheckboxOver, &st.CheckboxOver},
		ref{def.CheckboxOnDisabled, &st.CheckboxOnDisabled},
		ref{def.CheckboxOffDisabled, &st.CheckboxOffDisabled},
	); err != nil {
		return nil, err
	}
	if st.CheckboxOff == nil {
		return nil, fmt.Errorf("missing checkbox-off")
	}
	return st, nil
}

func (l *skinLoader) windowStyle(def windowDef) (*WindowStyle, error) {
	font, err := l.font(def.TitleFont)
	if err != nil {
		return nil, err
	}
	clr, err := l.color(def.TitleFontColor)
	if err != nil {
		return nil, err
	}
	st := &WindowStyle{TitleFont: font, TitleFontColor: clr}
	return st, l.drawables(
		ref{def.Background, &st.Background},
		ref{def.TitleBackground, &st.TitleBackground},
		ref{def.StageBackground, &st.StageBackground},
		ref{def.DockPreview, &st.DockPreview},
	)
}

// ref names a drawable to resolve into dst.
type ref struct {
	name string
	dst  *scene.Drawable
}

// drawables resolves each non-empty reference.
func (l *skinLoader) drawables(refs ...ref) error {
	for _, r := range refs {
		if r.name == "" {
			continue
		}
		d, err := Get[scene.Drawable](l.skin, r.name)
		if err != nil {
			return err
		}
		*r.dst = d
	}
	return nil
}

func (l *skinLoader) font(name string) (text.Face, error) {
	if name == "" {
		return nil, fmt.Errorf("missing font")
	}
	return Get[text.Face](l.skin, name)
}

// color resolves a literal or named color. An empty reference is nil.
func (l *skinLoader) color(s string) (color.Color, error) {
	switch {
	case s == "":
		return nil, nil
	case strings.HasPrefix(s, "#"):
		return ParseColor(s)
	}
	return Get[color.Color](l.skin, s)
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.Color, error) {
	alpha := uint8(0xff)
	hex := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		alpha, hex = uint8(a), s[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// Blend mixes c toward target by t in CIE L*a*b* space, keeping the alpha
// of c.
func Blend(c color.Color, target colorful.Color, t float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	base := colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
	r, g, b := base.BlendLab(target, t).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: n.A}
}
