package bridge

import (
	"fmt"
	"strings"
)

// Seat is a table position 0..3, the only identity the engine keys on.
type Seat uint8

const (
	North Seat = iota
	East
	South
	West
)

const InvalidSeat Seat = 255

// Seats lists the four seats in rotation order.
var Seats = [4]Seat{North, East, South, West}

func (s Seat) Valid() bool { return s < 4 }

// Next is the seat to the left (+1 mod 4).
func (s Seat) Next() Seat { return (s + 1) % 4 }

func (s Seat) Partner() Seat { return (s + 2) % 4 }

func (s Seat) Side() Side { return Side(s % 2) }

func (s Seat) String() string {
	switch s {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Invalid"
}

// Side is a partnership: seats 0&2 or seats 1&3.
type Side uint8

const (
	SideNS Side = 0
	SideEW Side = 1
)

func (s Side) String() string {
	if s == SideNS {
		return "NS"
	}
	return "EW"
}

// Other returns the opposing partnership.
func (s Side) Other() Side { return 1 - s }

// ParseSeat accepts N/E/S/W, full names, or 0..3.
func ParseSeat(raw string) (Seat, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "N", "NORTH", "0":
		return North, nil
	case "E", "EAST", "1":
		return East, nil
	case "S", "SOUTH", "2":
		return South, nil
	case "W", "WEST", "3":
		return West, nil
	}
	return InvalidSeat, fmt.Errorf("unknown seat %q", raw)
}
