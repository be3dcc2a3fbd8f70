package ui

import (
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessrules/internal/board"
)

// Piece outlines on a 45x45 canvas. Each is drawn with the side's fill and stroke.
var pieceShapes = map[board.PieceType]string{
	board.Pawn: `
  <circle cx="22.5" cy="13" r="5"/>
  <path d="M16 35 L19 20 L26 20 L29 35 Z"/>`,
	board.Rook: `
  <path d="M12 9 H16 V12 H19 V9 H26 V12 H29 V9 H33 V16 H12 Z"/>
  <path d="M14 16 H31 L30 35 H15 Z"/>`,
	board.Bishop: `
  <circle cx="22.5" cy="7" r="2.5"/>
  <path d="M22.5 9.5 C16 16 15 24 18 30 H27 C30 24 29 16 22.5 9.5 Z"/>
  <path d="M20 19 H25 M22.5 16.5 V21.5" fill="none"/>
  <rect x="16" y="30" width="13" height="5" rx="1"/>`,
	board.Knight: `
  <path d="M14 35 C14 28 18 24 20 20 C16 21 12 20 11.5 17 L19 10 L21 6 L24 9.5 C31 11 34 20 32 35 Z"/>
  <circle cx="19" cy="13" r="1.2" fill="none"/>`,
	board.Queen: `
  <circle cx="9" cy="12" r="2"/>
  <circle cx="17.5" cy="9.5" r="2"/>
  <circle cx="27.5" cy="9.5" r="2"/>
  <circle cx="36" cy="12" r="2"/>
  <path d="M11 30 L9 14 L16 24 L18 11 L22.5 23 L27 11 L29 24 L36 14 L34 30 Z"/>
  <rect x="12" y="30" width="21" height="5" rx="1"/>`,
	board.King: `
  <path d="M22.5 4 V11 M19 7 H26" fill="none"/>
  <path d="M12 30 C8 22 14 16 18.5 20 L22.5 12 L26.5 20 C31 16 37 22 33 30 Z"/>
  <rect x="12" y="30" width="21" height="5" rx="1"/>`,
}

const pieceBase = `
  <rect x="10" y="35" width="25" height="4" rx="1.5"/>`

var sideColors = map[board.Color][2]string{
	board.White: {"#f8f8f4", "#1e1e1e"},
	board.Black: {"#2c2c2c", "#050505"},
}

// pieceSVG builds the SVG document for one piece.
func pieceSVG(p board.Piece) string {
	colors := sideColors[p.Color()]
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">`)
	fmt.Fprintf(&sb, `<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">`, colors[0], colors[1])
	sb.WriteString(pieceShapes[p.Type()])
	sb.WriteString(pieceBase)
	sb.WriteString(`</g></svg>`)
	return sb.String()
}

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[board.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager rasterises every piece at the given square size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[board.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0,
	}
	sm.loadPieces()
	return sm
}

// GetPiece returns the sprite for a piece.
func (sm *SpriteManager) GetPiece(p board.Piece) *ebiten.Image {
	return sm.pieces[p]
}

func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, c := range []board.Color{board.White, board.Black} {
		for _, pt := range board.PieceTypes {
			piece := board.NewPiece(pt, c)
			img, err := rasterize(pieceSVG(piece), renderSize)
			if err != nil {
				log.Printf("Failed to render %s %s: %v", c, pt, err)
				continue
			}
			sm.pieces[piece] = ebiten.NewImageFromImage(img)
		}
	}
}

// rasterize renders an SVG document into a square RGBA image.
func rasterize(doc string, size int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// DrawPieceAt draws a piece with its top-left corner at x, y.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	if p == board.NoPiece {
		return
	}
	sprite := sm.GetPiece(p)
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	scale := 1.0 / sm.renderScale
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}

// Size returns the size of piece sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
