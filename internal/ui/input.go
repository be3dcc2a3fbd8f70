package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/chessrules/internal/board"
)

// InputHandler samples mouse state once per frame.
type InputHandler struct {
	mouseX, mouseY   int
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	wheelY           float64
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	_, ih.wheelY = ebiten.Wheel()
}

// MousePosition returns the cursor position in screen pixels.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftPressed returns true while the left mouse button is held.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased returns true if the left mouse button was just released.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// WheelY returns the vertical scroll delta of this frame.
func (ih *InputHandler) WheelY() float64 {
	return ih.wheelY
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// ClickedInBounds returns true if the mouse was just clicked within the given rectangle.
func (ih *InputHandler) ClickedInBounds(x, y, w, h int) bool {
	return ih.leftJustPressed && ih.IsInBounds(x, y, w, h)
}

var promotionKeys = map[ebiten.Key]board.PieceType{
	ebiten.KeyQ: board.Queen,
	ebiten.KeyR: board.Rook,
	ebiten.KeyB: board.Bishop,
	ebiten.KeyN: board.Knight,
}

// PromotionKey returns the piece kind whose key was pressed this frame.
func PromotionKey() (board.PieceType, bool) {
	for key, pt := range promotionKeys {
		if inpututil.IsKeyJustPressed(key) {
			return pt, true
		}
	}
	return board.NoPieceType, false
}

// IsKeyJustPressed returns true if the specified key was just pressed.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}
