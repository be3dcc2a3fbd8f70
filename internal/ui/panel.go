package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/game"
)

// Panel dimensions
const (
	PanelPadding   = 20
	ButtonHeight   = 36
	ButtonGap      = 8
	SectionLabelH  = 22
	StatusBarH     = 90
	HistoryRowH    = 22
	scrollPerNotch = 30
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	buttonActiveBg  = color.RGBA{76, 132, 96, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusCheck     = color.RGBA{255, 120, 110, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Active     func() bool
	primary    bool
	hovered    bool
	pressed    bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with controls, move history and status.
type Panel struct {
	game    *Game
	buttons []*Button

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

// createButtons lays out New Game across the top, then Save/Load and
// Hints/Flip in two rows of halves.
func (p *Panel) createButtons() {
	x := p.left() + PanelPadding
	w := PanelWidth - PanelPadding*2
	half := (w - ButtonGap) / 2
	y := PanelPadding

	p.buttons = []*Button{
		{X: x, Y: y, W: w, H: ButtonHeight, Label: "New Game", OnClick: p.game.NewGameAction, primary: true},
	}
	y += ButtonHeight + ButtonGap
	p.buttons = append(p.buttons,
		&Button{X: x, Y: y, W: half, H: ButtonHeight, Label: "Save", OnClick: p.game.SaveAction},
		&Button{X: x + half + ButtonGap, Y: y, W: half, H: ButtonHeight, Label: "Load", OnClick: p.game.LoadAction},
	)
	y += ButtonHeight + ButtonGap
	p.buttons = append(p.buttons,
		&Button{X: x, Y: y, W: half, H: ButtonHeight, Label: "Hints", OnClick: p.game.ToggleHintsAction, Active: p.game.HintsEnabled},
		&Button{X: x + half + ButtonGap, Y: y, W: half, H: ButtonHeight, Label: "Flip", OnClick: p.game.FlipAction, Active: p.game.renderer.Flipped},
	)
}

func (p *Panel) left() int {
	return p.game.renderer.BoardSize()
}

func (p *Panel) height() int {
	return p.game.renderer.BoardSize()
}

// historyTop is the y of the first move row.
func (p *Panel) historyTop() int {
	last := p.buttons[len(p.buttons)-1]
	return last.Y + last.H + 16 + SectionLabelH
}

// historyBottom is the y where the status bar begins.
func (p *Panel) historyBottom() int {
	return p.height() - StatusBarH
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	if wheel := input.WheelY(); wheel != 0 && mx >= p.left() && my >= p.historyTop() && my < p.historyBottom() {
		p.scrollY -= int(wheel * scrollPerNotch)
		p.clampScroll()
	}

	for _, btn := range p.buttons {
		btn.hovered = btn.contains(mx, my)
		btn.pressed = btn.hovered && input.IsLeftPressed()
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	// Clicks anywhere else on the panel are swallowed.
	return mx >= p.left()
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons {
		if btn.hovered {
			return true
		}
	}
	return false
}

// ResetScroll scrolls the move list back to the top.
func (p *Panel) ResetScroll() {
	p.scrollY = 0
	p.maxScrollY = 0
}

func (p *Panel) clampScroll() {
	p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image, r *Renderer) {
	vector.DrawFilledRect(screen, float32(p.left()), 0, float32(PanelWidth), float32(p.height()), panelBg, false)

	for _, btn := range p.buttons {
		p.drawButton(screen, btn)
	}

	x := p.left() + PanelPadding
	drawText(screen, "Moves", boldFace, float64(x), float64(p.historyTop()-SectionLabelH-2), textSecondary)
	p.drawMoveHistory(screen, p.game.Chess().History())
	p.drawStatusBar(screen)
}

func (p *Panel) drawButton(screen *ebiten.Image, btn *Button) {
	bg, border, fg := buttonBg, buttonBorder, textSecondary
	switch {
	case btn.primary && btn.pressed:
		bg, border, fg = accentPressed, accentPressed, textPrimary
	case btn.primary && btn.hovered:
		bg, border, fg = accentHover, accentHover, textPrimary
	case btn.primary:
		bg, border, fg = accentColor, accentPressed, textPrimary
	case btn.pressed:
		bg = buttonPressedBg
	case btn.Active != nil && btn.Active():
		bg, fg = buttonActiveBg, textPrimary
	case btn.hovered:
		bg, border = buttonHoverBg, accentColor
	}

	vector.DrawFilledRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), bg, false)
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, border, false)
	drawTextCentered(screen, btn.Label, regularFace, float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), fg)
}

// moveRows pairs history entries into numbered rows. A promotion is shown
// after the move that brought the pawn to the far rank.
func moveRows(history []game.Event) [][2]string {
	var rows [][2]string
	col := 0
	for _, e := range history {
		if e.Action == game.ActionPromote {
			if len(rows) > 0 {
				rows[len(rows)-1][1-col] += " " + e.SAN
			}
			continue
		}
		if col == 0 {
			rows = append(rows, [2]string{})
		}
		rows[len(rows)-1][col] = e.SAN
		col = 1 - col
	}
	return rows
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, history []game.Event) {
	x := p.left() + PanelPadding
	top, bottom := p.historyTop(), p.historyBottom()

	rows := moveRows(history)
	if len(rows) == 0 {
		drawText(screen, "No moves yet", regularFace, float64(x), float64(top+5), textMuted)
		return
	}

	visible := bottom - top
	content := len(rows) * HistoryRowH
	p.maxScrollY = max(0, content-visible)
	p.clampScroll()

	for i, row := range rows {
		y := top + i*HistoryRowH - p.scrollY
		if y < top || y+HistoryRowH > bottom {
			continue
		}
		if i%2 == 1 {
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
				float32(PanelWidth-PanelPadding*2+8), float32(HistoryRowH), moveRowAlt, false)
		}
		drawText(screen, fmt.Sprintf("%d.", i+1), regularFace, float64(x), float64(y), textMuted)
		drawText(screen, row[0], regularFace, float64(x+34), float64(y), textPrimary)
		drawText(screen, row[1], regularFace, float64(x+110), float64(y), textPrimary)
	}

	if p.maxScrollY > 0 {
		pct := float32(p.scrollY) / float32(p.maxScrollY)
		h := max(20, float32(visible)*float32(visible)/float32(content))
		y := float32(top) + pct*(float32(visible)-h)
		vector.DrawFilledRect(screen, float32(p.left()+PanelWidth-8), y, 4, h, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := float64(p.left() + PanelPadding)
	y := float64(p.historyBottom() + 10)

	vector.DrawFilledRect(screen, float32(x), float32(y-6), float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	g := p.game.Chess()
	statusText, statusColor := statusLine(g)
	drawText(screen, statusText, regularFace, x, y, statusColor)

	if pending := g.PromotionSquares(); !pending.IsEmpty() && !g.Status().Terminal() {
		drawText(screen, "Promote on "+pending.String()+" (P)", regularFace, x, y+22, accentColor)
	}

	stats := p.game.Stats()
	line := fmt.Sprintf("%s  %d games  %d-%d-%d", p.game.Username(), stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Stalemates)
	drawText(screen, line, labelFace, x, y+50, textMuted)
}

// statusLine describes the game state for the status bar.
func statusLine(g *game.Game) (string, color.RGBA) {
	switch g.Status() {
	case game.Checkmate:
		winner, _ := g.Winner()
		return "Checkmate - " + winner.String() + " wins", statusGameOver
	case game.Stalemate:
		return "Stalemate - draw", statusGameOver
	case game.Check:
		return g.Turn().String() + " to move - check", statusCheck
	}
	return g.Turn().String() + " to move", textPrimary
}
