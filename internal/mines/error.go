package mines

import "errors"

var (
	ErrInvalidDimensions    = errors.New("invalid grid dimensions")
	ErrInvalidConfiguration = errors.New("invalid game configuration")
	ErrOutOfBounds          = errors.New("point out of bounds")
	ErrGameOver             = errors.New("game is over")
	ErrNotStarted           = errors.New("game has not started")
	ErrMinesPlaced          = errors.New("mines are already placed")
)
