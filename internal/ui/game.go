package ui

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/config"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// PanelWidth is the width of the side panel in pixels.
const PanelWidth = 240

// promotionChoices is the order pieces appear in the promotion chooser.
var promotionChoices = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// Snapshot is the part of the game state the renderer highlights.
type Snapshot struct {
	Board      board.Board
	Last       game.Event
	HasLast    bool
	Promotions board.SquareSet
}

// Game implements ebiten.Game for two players sharing one board.
type Game struct {
	game     *game.Game
	started  time.Time
	recorded bool

	// Board interaction
	selected   board.Square
	legal      board.SquareSet
	dragging   bool
	dragPiece  board.Piece
	dragSquare board.Square

	// Promotion chooser
	chooser          [4][2]int
	chooserDismissed bool

	cfg   *config.Config
	store *storage.Storage
	prefs *storage.Preferences
	stats *storage.GameStats

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
}

// NewGame creates the windowed game. store may be nil, in which case nothing
// is persisted.
func NewGame(cfg *config.Config, store *storage.Storage) *Game {
	g := &Game{
		game:       game.New(),
		started:    time.Now(),
		selected:   board.NoSquare,
		dragSquare: board.NoSquare,
		cfg:        cfg,
		store:      store,
		renderer:   NewRenderer(cfg.Window.SquareSize),
		input:      NewInputHandler(),
		feedback:   NewFeedbackManager(cfg.Sound),
	}
	g.loadPreferences()
	g.panel = NewPanel(g)
	g.checkFirstLaunch()
	return g
}

// loadPreferences loads user preferences from storage.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.prefs.ShowHints = g.cfg.Hints
	g.stats = storage.NewGameStats()
	if g.store == nil {
		return
	}

	prefs, err := g.store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
	} else {
		g.prefs = prefs
	}
	g.renderer.SetFlipped(g.prefs.Flipped)

	stats, err := g.store.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
	} else {
		g.stats = stats
	}
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.Flipped = g.renderer.Flipped()
	g.prefs.LastPlayed = time.Now()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// checkFirstLaunch greets a new player with the controls.
func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	isFirst, err := g.store.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}
	g.feedback.Info(fmt.Sprintf("Welcome, %s! Drag pieces to move, H toggles hints", g.prefs.Username))
	if err := g.store.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
	g.savePreferences()
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Close()
		return ebiten.Termination
	}

	g.input.Update()
	g.feedback.Update()

	g.handleKeys()

	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	if g.choosingPromotion() {
		g.handlePromotionInput()
	} else {
		g.handleBoardInput()
	}

	g.updateCursor()
	return nil
}

// updateCursor shows a pointer over panel buttons.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// handleKeys processes keyboard shortcuts. While a promotion is pending,
// Q R B N pick the piece, so N only starts a new game otherwise.
func (g *Game) handleKeys() {
	if g.choosingPromotion() {
		if kind, ok := PromotionKey(); ok {
			g.promote(kind)
			return
		}
		if IsKeyJustPressed(ebiten.KeyEscape) {
			g.chooserDismissed = true
			return
		}
	}

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyH):
		g.ToggleHintsAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyS):
		g.SaveAction()
	case IsKeyJustPressed(ebiten.KeyL):
		g.LoadAction()
	case IsKeyJustPressed(ebiten.KeyP):
		if !g.game.PromotionSquares().IsEmpty() {
			g.chooserDismissed = false
		}
	}
}

// choosingPromotion reports whether the promotion chooser is open.
func (g *Game) choosingPromotion() bool {
	return !g.chooserDismissed && !g.game.Status().Terminal() && !g.game.PromotionSquares().IsEmpty()
}

// handlePromotionInput picks a piece from the chooser by clicking.
func (g *Game) handlePromotionInput() {
	size := g.renderer.SquareSize()
	for i, box := range g.chooser {
		if g.input.ClickedInBounds(box[0], box[1], size, size) {
			g.promote(promotionChoices[i])
			return
		}
	}
}

// promote replaces the first pending pawn with kind.
func (g *Game) promote(kind board.PieceType) {
	sq := board.NoSquare
	for s := range g.game.PromotionSquares().All() {
		sq = s
		break
	}
	if sq == board.NoSquare {
		return
	}
	if err := g.game.SetPromotion(sq, kind); err != nil {
		log.Printf("Promotion on %s refused: %v", sq, err)
		if errors.Is(err, game.ErrInvalidPromotion) {
			g.feedback.Error("Cannot promote to " + kind.String() + " here")
		} else {
			g.feedback.Error(err.Error())
		}
		return
	}
	g.feedback.OnPromotion(sq, kind)
	if last := g.lastEvent(); last.Status.Terminal() {
		g.feedback.OnMoveMade(last)
	}
	g.checkGameEnd()
}

// handleBoardInput processes mouse interactions with the board.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()
	if mx >= g.renderer.BoardSize() || my >= g.renderer.BoardSize() {
		if g.dragging && g.input.IsLeftJustReleased() {
			g.clearSelection()
		}
		return
	}

	if g.input.IsLeftJustPressed() {
		sq := g.renderer.ScreenToSquare(mx, my)
		if sq == board.NoSquare {
			return
		}

		piece := g.game.PieceAt(sq)
		if piece != board.NoPiece && piece.Color() == g.game.Turn() && !g.game.Status().Terminal() {
			g.selectSquare(sq)
			g.startDrag(sq)
			return
		}

		if g.selected != board.NoSquare {
			g.tryMove(g.selected, sq)
			return
		}

		// Clicking an opponent piece or a finished game still explains itself.
		if piece != board.NoPiece {
			g.tryMove(sq, sq)
		}
		g.clearSelection()
	}

	if g.dragging && g.input.IsLeftJustReleased() {
		g.handleDragRelease(mx, my)
	}
}

// selectSquare selects a square and computes its legal destinations.
func (g *Game) selectSquare(sq board.Square) {
	legal, err := g.game.LegalMoves(sq)
	if err != nil {
		g.clearSelection()
		return
	}
	g.selected = sq
	g.legal = legal
}

// clearSelection clears the current selection.
func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.legal = 0
	g.dragging = false
	g.dragPiece = board.NoPiece
	g.dragSquare = board.NoSquare
}

// startDrag begins dragging a piece.
func (g *Game) startDrag(sq board.Square) {
	g.dragging = true
	g.dragPiece = g.game.PieceAt(sq)
	g.dragSquare = sq
}

// handleDragRelease drops a dragged piece. Dropping it back on its own
// square keeps the selection for a click-to-move.
func (g *Game) handleDragRelease(mx, my int) {
	target := g.renderer.ScreenToSquare(mx, my)
	from := g.dragSquare
	g.dragging = false
	g.dragPiece = board.NoPiece
	g.dragSquare = board.NoSquare

	if target == board.NoSquare || target == from {
		return
	}
	g.tryMove(from, target)
}

// tryMove submits a move and reports the outcome.
func (g *Game) tryMove(from, to board.Square) {
	b := g.game.Board()
	_, err := g.game.MakeMove(from, to)
	g.clearSelection()
	if err != nil {
		if from != to || !errors.Is(err, game.ErrIllegalDestination) {
			g.feedback.OnInvalidMove(from, to, invalidMoveReason(&b, from, to, err))
		}
		return
	}

	g.chooserDismissed = false
	g.feedback.OnMoveMade(g.lastEvent())
	g.checkGameEnd()
}

// lastEvent returns the newest history entry.
func (g *Game) lastEvent() game.Event {
	h := g.game.History()
	if len(h) == 0 {
		return game.Event{}
	}
	return h[len(h)-1]
}

// checkGameEnd records a finished game's result once.
func (g *Game) checkGameEnd() {
	if g.recorded || !g.game.Status().Terminal() {
		return
	}
	g.recorded = true

	result, err := storage.ResultOf(g.game, time.Since(g.started))
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	if g.store == nil {
		return
	}
	if err := g.store.RecordResult(result); err != nil {
		log.Printf("Warning: Failed to record result: %v", err)
		return
	}
	if stats, err := g.store.LoadStats(); err == nil {
		g.stats = stats
	}
	if err := g.store.DeleteGame(storage.DefaultSlot); err != nil {
		log.Printf("Warning: Failed to clear autosave: %v", err)
	}
}

// NewGameAction starts a fresh game. An unfinished game is autosaved first.
func (g *Game) NewGameAction() {
	if g.store != nil && !g.game.Status().Terminal() && len(g.game.History()) > 0 {
		if err := g.store.SaveGame(storage.DefaultSlot, g.game); err != nil {
			log.Printf("Warning: Failed to autosave: %v", err)
		}
	}
	g.setGame(game.New())
	g.feedback.Info("New game")
}

// setGame swaps in g2 and resets all per-game state.
func (g *Game) setGame(g2 *game.Game) {
	g.game = g2
	g.started = time.Now()
	g.recorded = g2.Status().Terminal()
	g.chooserDismissed = false
	g.clearSelection()
	g.panel.ResetScroll()
}

// SaveAction saves the current game to the default slot.
func (g *Game) SaveAction() {
	if g.store == nil {
		g.feedback.Error("Storage is disabled")
		return
	}
	if err := g.store.SaveGame(storage.DefaultSlot, g.game); err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
		g.feedback.Error("Save failed")
		return
	}
	g.feedback.Info("Game saved")
}

// LoadAction restores the game in the default slot.
func (g *Game) LoadAction() {
	if g.store == nil {
		g.feedback.Error("Storage is disabled")
		return
	}
	loaded, err := g.store.LoadGame(storage.DefaultSlot)
	if err != nil {
		if errors.Is(err, storage.ErrNoSavedGame) {
			g.feedback.Info("No saved game")
			return
		}
		log.Printf("Warning: Failed to load game: %v", err)
		g.feedback.Error("Load failed")
		return
	}
	g.setGame(loaded)
	g.feedback.Info("Game loaded")
}

// ToggleHintsAction shows or hides legal move dots.
func (g *Game) ToggleHintsAction() {
	g.prefs.ShowHints = !g.prefs.ShowHints
	g.savePreferences()
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
	g.savePreferences()
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)

	if sq, ok := g.game.KingInCheck(); ok {
		g.renderer.DrawCheck(screen, sq)
	}

	g.renderer.DrawHighlights(screen, g.snapshot(), g.selected, g.legal, g.prefs.ShowHints)

	b := g.game.Board()
	dragSquare := board.NoSquare
	if g.dragging {
		dragSquare = g.dragSquare
	}
	g.renderer.DrawPieces(screen, &b, dragSquare, g.feedback.Animations())

	if g.dragging {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	if g.choosingPromotion() {
		g.chooser = g.renderer.DrawPromotionChooser(screen, g.game.Turn())
	}

	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen, g.renderer)
}

// snapshot collects the state DrawHighlights needs.
func (g *Game) snapshot() Snapshot {
	s := Snapshot{Board: g.game.Board(), Promotions: g.game.PromotionSquares()}
	s.Last, s.HasLast = g.game.LastMove()
	return s
}

// Layout returns the game's screen dimensions: the board plus the side panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.renderer.BoardSize() + PanelWidth, g.renderer.BoardSize()
}

// Chess returns the game being played.
func (g *Game) Chess() *game.Game {
	return g.game
}

// Stats returns the statistics of finished games.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// Username returns the player's name.
func (g *Game) Username() string {
	return g.prefs.Username
}

// HintsEnabled reports whether legal move dots are shown.
func (g *Game) HintsEnabled() bool {
	return g.prefs.ShowHints
}

// Close persists preferences and autosaves an unfinished game.
func (g *Game) Close() {
	g.savePreferences()
	if g.store != nil && !g.game.Status().Terminal() && len(g.game.History()) > 0 {
		if err := g.store.SaveGame(storage.DefaultSlot, g.game); err != nil {
			log.Printf("Warning: Failed to autosave: %v", err)
		}
	}
}
