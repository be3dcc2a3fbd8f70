package game

import "errors"

var (
	ErrIllegalDestination = errors.New("illegal destination")
	ErrGameOver           = errors.New("game is over")
	ErrNotPromotable      = errors.New("no pawn of the side to move on square")
	ErrInvalidPromotion   = errors.New("invalid promotion piece")
)
