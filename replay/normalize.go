package replay

import (
	"fmt"
	"math/rand"
	"strings"

	"bridge-lite/bridge"
	"bridge-lite/card"
)

type normalizedCall struct {
	seat bridge.Seat
	call bridge.Call
}

type normalizedPlay struct {
	seat bridge.Seat
	card card.Card
}

type normalizedSpec struct {
	opener bridge.Seat
	board  string
	deck   []card.Card // dealing order, card i goes to seat i%4
	calls  []normalizedCall
	plays  []normalizedPlay
}

func normalizeSpec(spec DealSpec) (normalizedSpec, error) {
	var out normalizedSpec

	opener := spec.OpeningSeat
	if strings.TrimSpace(opener) == "" {
		opener = "N"
	}
	seat, err := bridge.ParseSeat(opener)
	if err != nil {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_seat", Message: fmt.Sprintf("opening_seat: %v", err)}
	}
	out.opener = seat

	sources := 0
	for _, set := range []bool{strings.TrimSpace(spec.Board) != "", len(spec.Deck) > 0, spec.Hands != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return out, &ReplayError{StepIndex: -1, Reason: "invalid_deal", Message: "board, deck and hands are mutually exclusive"}
	}

	switch {
	case strings.TrimSpace(spec.Board) != "":
		out.board = strings.TrimSpace(spec.Board)
	case len(spec.Deck) > 0:
		out.deck, err = parseDeck(spec.Deck)
	default:
		out.deck, err = buildDeckFromHands(spec.Hands, seedFromSpec(spec.RNG))
	}
	if err != nil {
		return out, err
	}

	out.calls = make([]normalizedCall, 0, len(spec.Calls))
	for i, c := range spec.Calls {
		seat, err := bridge.ParseSeat(c.Seat)
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_seat", Message: err.Error()}
		}
		call, err := bridge.ParseCall(c.Call)
		if err != nil {
			return out, &ReplayError{StepIndex: int32(i), Reason: "invalid_call", Message: err.Error()}
		}
		out.calls = append(out.calls, normalizedCall{seat: seat, call: call})
	}

	out.plays = make([]normalizedPlay, 0, len(spec.Plays))
	for i, p := range spec.Plays {
		step := int32(len(spec.Calls) + i)
		seat, err := bridge.ParseSeat(p.Seat)
		if err != nil {
			return out, &ReplayError{StepIndex: step, Reason: "invalid_seat", Message: err.Error()}
		}
		c, err := card.Parse(p.Card)
		if err != nil {
			return out, &ReplayError{StepIndex: step, Reason: "invalid_card", Message: err.Error()}
		}
		out.plays = append(out.plays, normalizedPlay{seat: seat, card: c})
	}
	return out, nil
}

func parseDeck(deck []string) ([]card.Card, error) {
	if len(deck) != len(card.FullDeck) {
		return nil, &ReplayError{
			StepIndex: -1,
			Reason:    "invalid_deal",
			Message:   fmt.Sprintf("deck must contain %d cards, got %d", len(card.FullDeck), len(deck)),
		}
	}
	out := make([]card.Card, len(deck))
	for i, s := range deck {
		c, err := card.Parse(s)
		if err != nil {
			return nil, &ReplayError{StepIndex: -1, Reason: "invalid_card", Message: fmt.Sprintf("deck[%d]: %v", i, err)}
		}
		out[i] = c
	}
	if err := card.CheckDeck(out); err != nil {
		return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deal", Message: err.Error()}
	}
	return out, nil
}

// buildDeckFromHands pins the listed cards to their seats and fills the
// remaining slots from the rest of the deck, shuffled when seed != 0.
func buildDeckFromHands(hands *HandsSpec, seed int64) ([]card.Card, error) {
	var pinned [4]card.CardList
	used := make(map[card.Card]struct{}, 52)
	if hands != nil {
		lists := [4][]string{hands.North, hands.East, hands.South, hands.West}
		for _, seat := range bridge.Seats {
			raw := lists[seat]
			if len(raw) > 13 {
				return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deal", Message: fmt.Sprintf("%s holds %d cards", seat, len(raw))}
			}
			for i, s := range raw {
				c, err := card.Parse(s)
				if err != nil {
					return nil, &ReplayError{StepIndex: -1, Reason: "invalid_card", Message: fmt.Sprintf("%s[%d]: %v", strings.ToLower(seat.String()), i, err)}
				}
				if _, ok := used[c]; ok {
					return nil, &ReplayError{StepIndex: -1, Reason: "invalid_deal", Message: fmt.Sprintf("card %s appears multiple times", c)}
				}
				used[c] = struct{}{}
				pinned[seat].Add(c)
			}
		}
	}

	remaining := make([]card.Card, 0, 52-len(used))
	for _, c := range card.FullDeck {
		if _, ok := used[c]; ok {
			continue
		}
		remaining = append(remaining, c)
	}
	if seed != 0 {
		r := rand.New(rand.NewSource(seed))
		r.Shuffle(len(remaining), func(i, j int) {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		})
	}

	var full [4]card.CardList
	ri := 0
	for _, seat := range bridge.Seats {
		full[seat] = append(full[seat], pinned[seat]...)
		for len(full[seat]) < 13 {
			full[seat].Add(remaining[ri])
			ri++
		}
	}
	return bridge.InterleaveHands(full), nil
}

func seedFromSpec(rng *RNGSpec) int64 {
	if rng == nil {
		return 0
	}
	return rng.Seed
}
