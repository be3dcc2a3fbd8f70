package ui

import (
	"errors"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// InvalidMoveReason represents why a move was rejected.
type InvalidMoveReason int

const (
	ReasonUnknown InvalidMoveReason = iota
	ReasonWouldLeaveKingInCheck
	ReasonBlockedByOwnPiece
	ReasonInvalidPieceMovement
	ReasonNotYourTurn
	ReasonGameOver
)

// invalidMoveReason explains a MakeMove rejection in player terms.
func invalidMoveReason(b *board.Board, from, to board.Square, err error) InvalidMoveReason {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return ReasonGameOver
	case errors.Is(err, board.ErrWrongOwner), errors.Is(err, board.ErrEmptySquare):
		return ReasonNotYourTurn
	case !errors.Is(err, game.ErrIllegalDestination):
		return ReasonUnknown
	}

	mover := b.PieceAt(from)
	if target := b.PieceAt(to); target != board.NoPiece && target.Color() == mover.Color() {
		return ReasonBlockedByOwnPiece
	}
	pseudo, perr := b.PseudoLegalMoves(from, mover.Color())
	if perr == nil && pseudo.Contains(to) {
		return ReasonWouldLeaveKingInCheck
	}
	return ReasonInvalidPieceMovement
}

// ToastType selects a toast's colors.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

var toastColors = map[ToastType][2]color.RGBA{
	ToastInfo:    {{50, 100, 150, 220}, {255, 255, 255, 255}},
	ToastWarning: {{180, 140, 20, 220}, {40, 30, 0, 255}},
	ToastError:   {{180, 50, 50, 220}, {255, 255, 255, 255}},
	ToastSuccess: {{50, 150, 50, 220}, {255, 255, 255, 255}},
}

// timed is anything that expires after a fixed duration.
type timed struct {
	start    time.Time
	duration time.Duration
}

func newTimed(d time.Duration) timed {
	return timed{start: time.Now(), duration: d}
}

// progress runs from 0 to 1 over the lifetime.
func (t timed) progress() float64 {
	return time.Since(t.start).Seconds() / t.duration.Seconds()
}

func (t timed) expired() bool {
	return t.progress() >= 1
}

// prune drops expired entries in place.
func prune[T any](items []T, lifetime func(T) timed) []T {
	kept := items[:0]
	for _, it := range items {
		if !lifetime(it).expired() {
			kept = append(kept, it)
		}
	}
	return kept
}

type toast struct {
	timed
	message string
	kind    ToastType
}

// ToastManager stacks short notifications over the board.
type ToastManager struct {
	toasts   []toast
	maxStack int
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3}
}

// Show displays a new toast notification.
func (tm *ToastManager) Show(message string, kind ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, toast{timed: newTimed(duration), message: message, kind: kind})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	tm.toasts = prune(tm.toasts, func(t toast) timed { return t.timed })
}

// Draw renders all active toasts centred over a board of the given width.
func (tm *ToastManager) Draw(screen *ebiten.Image, boardWidth int) {
	face := regularFace
	if face == nil {
		return
	}

	const padding = 12.0
	y := 50.0
	for _, t := range tm.toasts {
		// Fade in and out over the first and last fifth of a second.
		elapsed := time.Since(t.start).Seconds()
		alpha := math.Min(1, math.Min(elapsed, t.duration.Seconds()-elapsed)/0.2)
		alpha = math.Max(alpha, 0)

		colors := toastColors[t.kind]
		bg, fg := colors[0], colors[1]
		bg.A = uint8(float64(bg.A) * alpha)
		fg.A = uint8(float64(fg.A) * alpha)

		w, h := text.Measure(t.message, face, 0)
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(boardWidth)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)
		drawText(screen, t.message, face, x+padding, y+padding, fg)
		y += boxH + 8
	}
}

type shake struct {
	timed
	square    board.Square
	intensity float64
}

type flash struct {
	timed
	square board.Square
	color  color.RGBA
}

// AnimationManager tracks piece shakes and square flashes.
type AnimationManager struct {
	shakes  []shake
	flashes []flash
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, shake{timed: newTimed(300 * time.Millisecond), square: sq, intensity: 8})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, flash{timed: newTimed(400 * time.Millisecond), square: sq, color: c})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	am.shakes = prune(am.shakes, func(s shake) timed { return s.timed })
	am.flashes = prune(am.flashes, func(f flash) timed { return f.timed })
}

// GetShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.square != sq {
			continue
		}
		p := s.progress()
		if p >= 1 {
			return 0, 0
		}
		// Damped sine.
		return s.intensity * math.Exp(-5*p) * math.Sin(40*p), 0
	}
	return 0, 0
}

// DrawFlashes renders all active flash overlays, fading each out.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, renderer *Renderer) {
	size := float32(renderer.SquareSize())
	for _, f := range am.flashes {
		p := f.progress()
		if p >= 1 {
			continue
		}
		c := f.color
		c.A = uint8(float64(c.A) * (1 - p))
		x, y := renderer.SquareToScreen(f.square)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
}

// FeedbackManager coordinates toasts, animations and sound.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(sound bool) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(sound),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, renderer *Renderer) {
	fm.animations.DrawFlashes(screen, renderer)
	fm.toasts.Draw(screen, renderer.BoardSize())
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Info shows a short neutral message.
func (fm *FeedbackManager) Info(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

// Error shows a failure message.
func (fm *FeedbackManager) Error(message string) {
	fm.toasts.Show(message, ToastError, 3*time.Second)
	fm.audio.Play(SoundInvalid)
}

// OnInvalidMove handles an invalid move attempt.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, reason InvalidMoveReason) {
	var message string
	switch reason {
	case ReasonWouldLeaveKingInCheck:
		message = "Illegal move - King would be in check"
	case ReasonBlockedByOwnPiece:
		message = "Square occupied by your piece"
	case ReasonInvalidPieceMovement:
		message = "Invalid move for this piece"
	case ReasonNotYourTurn:
		message = "Not your turn"
	case ReasonGameOver:
		message = "The game is over - press N for a new game"
	default:
		message = "Invalid move"
	}

	fm.toasts.Show(message, ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the sound for a move and announces its outcome.
func (fm *FeedbackManager) OnMoveMade(e game.Event) {
	switch e.Status {
	case game.Checkmate:
		winner := e.Piece.Color()
		fm.toasts.Show("Checkmate! "+winner.String()+" wins!", ToastSuccess, 5*time.Second)
		fm.audio.Play(SoundGameEnd)
	case game.Stalemate:
		fm.toasts.Show("Stalemate - Draw", ToastInfo, 5*time.Second)
		fm.audio.Play(SoundGameEnd)
	case game.Check:
		fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
	default:
		if e.Captured != board.NoPiece {
			fm.audio.Play(SoundCapture)
		} else {
			fm.audio.Play(SoundMove)
		}
	}
}

// OnPromotion confirms a promotion.
func (fm *FeedbackManager) OnPromotion(sq board.Square, kind board.PieceType) {
	fm.toasts.Show("Promoted to "+kind.String()+" on "+sq.String(), ToastSuccess, 2*time.Second)
	fm.animations.StartFlash(sq, color.RGBA{100, 160, 255, 160})
	fm.audio.Play(SoundPromote)
}

// Audio returns the audio manager for settings access.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}
