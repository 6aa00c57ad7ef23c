package bridge

import "fmt"

// Outcome is the result of a played-out contract. There is no point scale;
// a contract is either made or failed by Margin tricks.
type Outcome struct {
	Contract       Contract
	TricksBySeat   [4]int
	SideTricks     [2]int
	Required       int
	DeclarerTricks int
	Fulfilled      bool
	// Margin is declarer tricks minus required: overtricks when >= 0,
	// undertricks when negative.
	Margin int
}

func (o Outcome) String() string {
	switch {
	case !o.Fulfilled:
		return fmt.Sprintf("%s down %d", o.Contract, -o.Margin)
	case o.Margin > 0:
		return fmt.Sprintf("%s made +%d", o.Contract, o.Margin)
	default:
		return fmt.Sprintf("%s made", o.Contract)
	}
}

// Score checks the tallies and compares declarer's side against the contract.
func Score(c Contract, tricksBySeat [4]int) (Outcome, error) {
	if !c.Bid().Valid() || !c.Declarer.Valid() {
		return Outcome{}, errInvariant("scoring an invalid contract %d%s by seat %d", c.Level, c.Strain, c.Declarer)
	}
	var sides [2]int
	total := 0
	for _, s := range Seats {
		n := tricksBySeat[s]
		if n < 0 || n > 13 {
			return Outcome{}, errInvariant("%s won %d tricks", s, n)
		}
		sides[s.Side()] += n
		total += n
	}
	if total != 13 {
		return Outcome{}, errInvariant("trick totals NS=%d EW=%d do not sum to 13", sides[SideNS], sides[SideEW])
	}

	required := c.RequiredTricks()
	declarerTricks := sides[c.Side()]
	return Outcome{
		Contract:       c,
		TricksBySeat:   tricksBySeat,
		SideTricks:     sides,
		Required:       required,
		DeclarerTricks: declarerTricks,
		Fulfilled:      declarerTricks >= required,
		Margin:         declarerTricks - required,
	}, nil
}
