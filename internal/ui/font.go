package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFace *text.GoTextFace
	boldFace    *text.GoTextFace
	labelFace   *text.GoTextFace
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 18.0
	labelFontSize   = 11.0
)

func init() {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("Failed to load regular font: %v", err)
		return
	}
	regularFace = &text.GoTextFace{Source: regular, Size: defaultFontSize}
	labelFace = &text.GoTextFace{Source: regular, Size: labelFontSize}

	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		log.Printf("Failed to load bold font: %v", err)
		return
	}
	boldFace = &text.GoTextFace{Source: bold, Size: titleFontSize}
}

// drawText draws s with its top-left corner at x, y. A nil face falls back to the regular face.
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil {
		face = regularFace
	}
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextCentered draws s centred on cx, cy.
func drawTextCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c color.Color) {
	if face == nil {
		face = regularFace
	}
	if face == nil {
		return
	}
	w, h := text.Measure(s, face, 0)
	drawText(screen, s, face, cx-w/2, cy-h/2, c)
}
