package tournament

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreWrite wraps any failed insert or delete. The transaction has been rolled back.
	ErrStoreWrite = errors.New("store write failed")
	// ErrInvalidMatch is the parent of every rejected match report.
	ErrInvalidMatch = errors.New("invalid match")
	// ErrSelfPairing is returned when winner and loser are the same player.
	ErrSelfPairing = fmt.Errorf("%w: a player cannot play themselves", ErrInvalidMatch)
	// ErrUnknownPlayer is returned when a match references an unregistered player.
	ErrUnknownPlayer = fmt.Errorf("%w: unknown player", ErrInvalidMatch)
	// ErrDuplicateMatch is returned when the two players have already met, in either orientation.
	ErrDuplicateMatch = errors.New("players have already been paired")
	// ErrOddPlayerCount is returned when pairings are requested for an odd number of players.
	ErrOddPlayerCount = errors.New("an even number of players is required for pairing")
	// ErrPlayerNotFound is returned by name lookups that match nobody.
	ErrPlayerNotFound = errors.New("player not found")
)
