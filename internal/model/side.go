package model

import "fmt"

// Side is the half of the map a combatant plays on. Kills, damage and chat
// always involve one of the two playing sides.
type Side int

const (
	SideCT Side = iota
	SideT
)

func (s Side) String() string {
	if s == SideT {
		return "T"
	}
	return "CT"
}

// Opposite returns the other playing side.
func (s Side) Opposite() Side {
	if s == SideT {
		return SideCT
	}
	return SideT
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "CT":
		*s = SideCT
	case "T", "TERRORIST":
		*s = SideT
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}

// FlashSide tags the participants of a flashbang. Unlike Side it admits the
// non-combatant Spectator team, which can be blinded (or, rarely, throw).
type FlashSide int

const (
	FlashCT FlashSide = iota
	FlashT
	FlashSpectator
)

func (f FlashSide) String() string {
	switch f {
	case FlashCT:
		return "CT"
	case FlashT:
		return "T"
	default:
		return "Spectator"
	}
}

func (f FlashSide) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FlashSide) UnmarshalText(b []byte) error {
	switch string(b) {
	case "CT":
		*f = FlashCT
	case "T", "TERRORIST":
		*f = FlashT
	case "Spectator":
		*f = FlashSpectator
	default:
		return fmt.Errorf("unknown flash side %q", b)
	}
	return nil
}

// WinReason is how a round was decided.
type WinReason string

const (
	WinElimination  WinReason = "elimination"
	WinBombDefused  WinReason = "bomb_defused"
	WinBombExploded WinReason = "bomb_exploded"
	WinTimeout      WinReason = "timeout"
)
