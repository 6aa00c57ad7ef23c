package replay

import (
	"bridge-lite/bridge"
	"bridge-lite/card"
)

// SpecFromDeal captures a finished deal as a DealSpec. hands are the four
// 13-card hands as dealt, before any card was played.
func SpecFromDeal(opener bridge.Seat, hands [4]card.CardList, calls []bridge.CallRecord, plays []bridge.Play) DealSpec {
	spec := DealSpec{
		OpeningSeat: seatName(opener),
		Hands: &HandsSpec{
			North: hands[bridge.North].Sorted().Strings(),
			East:  hands[bridge.East].Sorted().Strings(),
			South: hands[bridge.South].Sorted().Strings(),
			West:  hands[bridge.West].Sorted().Strings(),
		},
		Calls: make([]CallSpec, 0, len(calls)),
		Plays: make([]PlaySpec, 0, len(plays)),
	}
	for _, c := range calls {
		spec.Calls = append(spec.Calls, CallSpec{Seat: seatName(c.Seat), Call: c.Call.String()})
	}
	for _, p := range plays {
		spec.Plays = append(spec.Plays, PlaySpec{Seat: seatName(p.Seat), Card: p.Card.String()})
	}
	return spec
}
