package models

import (
	"errors"
	"fmt"
)

var ErrCardCountNegative = errors.New("card count must not be negative")

// Cards is the disciplinary record of one side, for a single game or
// summed over several. A game recorded without cards carries the zero value.
type Cards struct {
	Yellow          int `json:"yellow"`
	IndirectRed     int `json:"indirect_red"`      // second yellow
	DirectRed       int `json:"direct_red"`
	YellowAndDirect int `json:"yellow_and_direct"` // yellow followed by a direct red
}

func (c Cards) Validate() error {
	for _, v := range []struct {
		name string
		n    int
	}{
		{"yellow", c.Yellow},
		{"indirect_red", c.IndirectRed},
		{"direct_red", c.DirectRed},
		{"yellow_and_direct", c.YellowAndDirect},
	} {
		if v.n < 0 {
			return fmt.Errorf("%w: %s = %d", ErrCardCountNegative, v.name, v.n)
		}
	}
	return nil
}

func (c Cards) Add(other Cards) Cards {
	return Cards{
		Yellow:          c.Yellow + other.Yellow,
		IndirectRed:     c.IndirectRed + other.IndirectRed,
		DirectRed:       c.DirectRed + other.DirectRed,
		YellowAndDirect: c.YellowAndDirect + other.YellowAndDirect,
	}
}

func (c Cards) IsZero() bool { return c == Cards{} }

// Array lists the counts in storage order.
func (c Cards) Array() [4]int64 {
	return [4]int64{int64(c.Yellow), int64(c.IndirectRed), int64(c.DirectRed), int64(c.YellowAndDirect)}
}

// CardsFromArray is the inverse of Array. An empty slice is a game
// recorded without cards.
func CardsFromArray(a []int64) (Cards, error) {
	if len(a) == 0 {
		return Cards{}, nil
	}
	if len(a) != 4 {
		return Cards{}, fmt.Errorf("card record needs 4 counts, got %d", len(a))
	}
	c := Cards{Yellow: int(a[0]), IndirectRed: int(a[1]), DirectRed: int(a[2]), YellowAndDirect: int(a[3])}
	return c, c.Validate()
}
