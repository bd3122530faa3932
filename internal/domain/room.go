package domain

import (
	"fmt"
	"strings"
)

type Room struct {
	Code string
}

func NewRoom(code string) (Room, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Room{}, ErrEmptyRoomCode
	}
	return Room{Code: code}, nil
}

// ValidateRooms checks that the list is usable as an allocation pool.
func ValidateRooms(rooms []Room) error {
	if len(rooms) == 0 {
		return ErrNoRooms
	}

	seen := make(map[string]struct{}, len(rooms))
	for i, room := range rooms {
		if strings.TrimSpace(room.Code) == "" {
			return fmt.Errorf("room %d: %w", i, ErrEmptyRoomCode)
		}
		if _, dup := seen[room.Code]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRoomCode, room.Code)
		}
		seen[room.Code] = struct{}{}
	}
	return nil
}
