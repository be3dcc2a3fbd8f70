package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	PromotionColor color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255},
		DarkSquare:     color.RGBA{181, 136, 99, 255},
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		PromotionColor: color.RGBA{100, 160, 255, 150},
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
	}
}

// Renderer draws the board, highlights and pieces.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	squareSize int
	boardSize  int
	flipped    bool
}

// NewRenderer creates a renderer for squares of the given pixel size.
func NewRenderer(squareSize int) *Renderer {
	return &Renderer{
		sprites:    NewSpriteManager(squareSize),
		theme:      DefaultTheme(),
		squareSize: squareSize,
		boardSize:  squareSize * 8,
	}
}

// SetFlipped draws the board from Black's side when flipped is true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// DrawBoard draws the squares and their coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.squareSize)
	for sq := board.Square(0); sq < 64; sq++ {
		c := r.theme.LightSquare
		// a1 is dark; files are mirrored so parity flips.
		if (sq.Rank()+sq.File())%2 == 1 {
			c = r.theme.DarkSquare
		}
		x, y := r.SquareToScreen(sq)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the bottom rank with files and the left file with ranks.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	const pad = 3
	for i := 0; i < 8; i++ {
		fileSq := r.ScreenToSquare(i*r.squareSize+1, r.boardSize-1)
		rankSq := r.ScreenToSquare(1, i*r.squareSize+1)
		name := fileSq.String()

		x := float64((i+1)*r.squareSize - 9)
		y := float64(r.boardSize - 14)
		drawText(screen, name[:1], labelFace, x, y, r.labelColor(fileSq))

		name = rankSq.String()
		drawText(screen, name[1:], labelFace, pad, float64(i*r.squareSize+pad), r.labelColor(rankSq))
	}
}

// labelColor contrasts with the square the label sits on.
func (r *Renderer) labelColor(sq board.Square) color.RGBA {
	if (sq.Rank()+sq.File())%2 == 1 {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// DrawHighlights draws the last move, the selection and the selected piece's legal moves.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, g Snapshot, selected board.Square, legal board.SquareSet, hints bool) {
	if g.HasLast {
		r.highlightSquare(screen, g.Last.From, r.theme.LastMoveColor)
		r.highlightSquare(screen, g.Last.To, r.theme.LastMoveColor)
	}
	for sq := range g.Promotions.All() {
		r.highlightSquare(screen, sq, r.theme.PromotionColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	if !hints {
		return
	}
	for sq := range legal.All() {
		r.drawLegalMoveIndicator(screen, sq, g.Board.PieceAt(sq) != board.NoPiece)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.SquareToScreen(sq)
	size := float32(r.squareSize)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
}

// drawLegalMoveIndicator draws a dot on empty targets and a ring on captures.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square, capture bool) {
	x, y := r.SquareToScreen(sq)
	half := float32(r.squareSize) / 2
	cx, cy := float32(x)+half, float32(y)+half

	if capture {
		vector.StrokeCircle(screen, cx, cy, half*0.85, half*0.15, r.theme.LegalMoveColor, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, half*0.3, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece except the one being dragged, shaking any the
// animation manager says should shake.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, dragSquare board.Square, anims *AnimationManager) {
	for sq, piece := range b.All() {
		if piece == board.NoPiece || sq == dragSquare {
			continue
		}
		x, y := r.SquareToScreen(sq)
		dx := 0.0
		if anims != nil {
			dx, _ = anims.GetShakeOffset(sq)
		}
		r.sprites.DrawPieceAt(screen, piece, float64(x)+dx, float64(y))
	}
}

// DrawDraggedPiece draws the piece being dragged centred on the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	half := r.squareSize / 2
	r.sprites.DrawPieceAt(screen, piece, float64(mouseX-half), float64(mouseY-half))
}

// DrawPromotionChooser draws the four promotion choices over the board centre
// and returns their rectangles' top-left corners in Q, R, B, N order.
func (r *Renderer) DrawPromotionChooser(screen *ebiten.Image, c board.Color) [4][2]int {
	var boxes [4][2]int
	size := r.squareSize
	x0 := r.boardSize/2 - 2*size
	y0 := r.boardSize/2 - size/2

	vector.DrawFilledRect(screen, 0, 0, float32(r.boardSize), float32(r.boardSize), color.RGBA{0, 0, 0, 120}, false)
	vector.DrawFilledRect(screen, float32(x0-6), float32(y0-30), float32(4*size+12), float32(size+36), r.theme.Background, false)
	drawTextCentered(screen, "Promote to (Q R B N)", regularFace, float64(r.boardSize)/2, float64(y0-15), r.theme.TextColor)

	for i, pt := range promotionChoices {
		x := x0 + i*size
		vector.DrawFilledRect(screen, float32(x+2), float32(y0+2), float32(size-4), float32(size-4), r.theme.LightSquare, false)
		r.sprites.DrawPieceAt(screen, board.NewPiece(pt, c), float64(x), float64(y0))
		boxes[i] = [2]int{x, y0}
	}
	return boxes
}

// SquareToScreen returns the top-left pixel of sq.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	// File 0 is the h-file, so White's view puts it on the right.
	col := 7 - sq.File()
	row := 7 - sq.Rank()
	if r.flipped {
		col, row = 7-col, 7-row
	}
	return col * r.squareSize, row * r.squareSize
}

// ScreenToSquare converts a pixel position to a board square, or NoSquare off the board.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	if x < 0 || x >= r.boardSize || y < 0 || y >= r.boardSize {
		return board.NoSquare
	}
	col := x / r.squareSize
	row := y / r.squareSize
	if r.flipped {
		col, row = 7-col, 7-row
	}
	return board.NewSquare(7-col, 7-row)
}

// BoardSize returns the board size in pixels.
func (r *Renderer) BoardSize() int {
	return r.boardSize
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}
