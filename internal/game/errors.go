package game

import "errors"

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrGameStarted   = errors.New("game already started")
	ErrAlreadyJoined = errors.New("player already in room")
)
