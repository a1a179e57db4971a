package ui

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

var (
	goRegularOnce   sync.Once
	goRegularSource *text.GoTextFaceSource
	goRegularErr    error
)

// RegularFont returns the Go Regular typeface at the given pixel size.
func RegularFont(size float64) (text.Face, error) {
	goRegularOnce.Do(func() {
		goRegularSource, goRegularErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if goRegularErr != nil {
		return nil, fmt.Errorf("loading go regular font: %w", goRegularErr)
	}
	return &text.GoTextFace{
		Source:   goRegularSource,
		Size:     size,
		Language: language.English,
	}, nil
}

// FixedFont returns the 7x13 bitmap font. Every glyph advances 7 pixels.
func FixedFont() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}

// lineHeight is the distance between the baselines of two lines.
func lineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// measure returns the size of s drawn with face, one line per '\n'.
func measure(s string, face text.Face) (float64, float64) {
	return text.Measure(s, face, lineHeight(face))
}
