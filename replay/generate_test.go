package replay

import (
	"errors"
	"testing"

	"bridge-lite/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suitStrings(s card.Suit) []string {
	var out []string
	for _, c := range card.FullDeck {
		if c.Suit() == s {
			out = append(out, c.String())
		}
	}
	return out
}

// fourSpadesSpec: every seat holds one suit, North declares 4S and takes
// all thirteen tricks after ruffing the opening heart lead.
func fourSpadesSpec() DealSpec {
	spec := DealSpec{
		OpeningSeat: "N",
		Hands: &HandsSpec{
			North: suitStrings(card.Spade),
			East:  suitStrings(card.Heart),
			South: suitStrings(card.Diamond),
			West:  suitStrings(card.Club),
		},
		Calls: []CallSpec{
			{Seat: "N", Call: "4S"},
			{Seat: "E", Call: "Pass"},
			{Seat: "S", Call: "Pass"},
			{Seat: "W", Call: "Pass"},
		},
	}
	spec.Plays = append(spec.Plays,
		PlaySpec{Seat: "E", Card: "AH"},
		PlaySpec{Seat: "S", Card: "2D"},
		PlaySpec{Seat: "W", Card: "2C"},
		PlaySpec{Seat: "N", Card: "2S"},
	)
	low := []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	hearts := []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}
	for i, r := range low {
		spec.Plays = append(spec.Plays,
			PlaySpec{Seat: "N", Card: r + "S"},
			PlaySpec{Seat: "E", Card: hearts[i] + "H"},
			PlaySpec{Seat: "S", Card: r + "D"},
			PlaySpec{Seat: "W", Card: r + "C"},
		)
	}
	return spec
}

func fullDeckStrings() []string {
	out := make([]string, 0, 52)
	for _, c := range card.FullDeck {
		out = append(out, c.String())
	}
	return out
}

func TestGenerateReplayTape_IsDeterministic(t *testing.T) {
	spec := fourSpadesSpec()

	tapeA, err := GenerateReplayTape(spec)
	require.NoError(t, err)
	tapeB, err := GenerateReplayTape(spec)
	require.NoError(t, err)

	assert.Equal(t, ToWireReplayTape(tapeA), ToWireReplayTape(tapeB))
	require.NotEmpty(t, tapeA.Events)

	counts := map[string]int{}
	for i, e := range tapeA.Events {
		counts[e.Type]++
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Equal(t, 1, counts["dealStart"])
	assert.Equal(t, 4, counts["call"])
	assert.Equal(t, 1, counts["auctionEnd"])
	assert.Equal(t, 52, counts["play"])
	assert.Equal(t, 13, counts["trickEnd"])
	assert.Equal(t, 1, counts["dealEnd"])
	assert.Equal(t, "dealEnd", tapeA.Events[len(tapeA.Events)-1].Type)
}

func TestGenerateReplayTape_EnvelopeRoundTrip(t *testing.T) {
	tape, err := GenerateReplayTape(fourSpadesSpec())
	require.NoError(t, err)

	last := tape.Events[len(tape.Events)-1]
	env, err := DecodeEnvelope(last.EnvelopeB64)
	require.NoError(t, err)

	fields := env.GetFields()
	assert.Equal(t, "dealEnd", fields["type"].GetStringValue())
	assert.Equal(t, defaultTableID, fields["table_id"].GetStringValue())
	assert.Equal(t, float64(last.Seq), fields["seq"].GetNumberValue())

	payload := fields["payload"].GetStructValue().GetFields()
	assert.Equal(t, float64(13), payload["ns_tricks"].GetNumberValue())
	assert.Equal(t, float64(3), payload["margin"].GetNumberValue())
	assert.True(t, payload["fulfilled"].GetBoolValue())
	assert.Equal(t, "4S by North made +3", payload["result"].GetStringValue())

	start, err := DecodeEnvelope(tape.Events[0].EnvelopeB64)
	require.NoError(t, err)
	hands := start.GetFields()["payload"].GetStructValue().GetFields()["hands"].GetStructValue().GetFields()
	north := hands["north"].GetListValue().GetValues()
	require.Len(t, north, 13)
	assert.Equal(t, "AS", north[0].GetStringValue())
}

func TestGenerateReplayTape_PassedOut(t *testing.T) {
	spec := DealSpec{
		OpeningSeat: "W",
		RNG:         &RNGSpec{Seed: 9},
		Calls: []CallSpec{
			{Seat: "W", Call: "P"},
			{Seat: "N", Call: "P"},
			{Seat: "E", Call: "P"},
			{Seat: "S", Call: "P"},
		},
	}
	tape, err := GenerateReplayTape(spec)
	require.NoError(t, err)
	last := tape.Events[len(tape.Events)-1]
	assert.Equal(t, "dealEnd", last.Type)
	assert.True(t, last.Value.GetFields()["payload"].GetStructValue().GetFields()["passed_out"].GetBoolValue())
	assert.Equal(t, "West", tape.OpeningSeat)
}

func TestGenerateReplayTape_StepErrors(t *testing.T) {
	deck := fullDeckStrings()
	oneClub := []CallSpec{
		{Seat: "N", Call: "1C"}, {Seat: "E", Call: "P"}, {Seat: "S", Call: "P"}, {Seat: "W", Call: "P"},
	}

	cases := []struct {
		name   string
		spec   DealSpec
		step   int32
		reason string
	}{
		{
			name:   "out of turn call",
			spec:   DealSpec{Deck: deck, Calls: []CallSpec{{Seat: "N", Call: "1C"}, {Seat: "S", Call: "P"}}},
			step:   1,
			reason: "out_of_turn",
		},
		{
			name:   "bid too low",
			spec:   DealSpec{Deck: deck, Calls: []CallSpec{{Seat: "N", Call: "2S"}, {Seat: "E", Call: "1NT"}}},
			step:   1,
			reason: "illegal_bid",
		},
		{
			name:   "call after close",
			spec:   DealSpec{Deck: deck, Calls: append(append([]CallSpec{}, oneClub...), CallSpec{Seat: "N", Call: "P"})},
			step:   4,
			reason: "auction_closed",
		},
		{
			name:   "play during auction",
			spec:   DealSpec{Deck: deck, Calls: oneClub[:1], Plays: []PlaySpec{{Seat: "E", Card: "3C"}}},
			step:   1,
			reason: "wrong_phase",
		},
		{
			name:   "card not held",
			spec:   DealSpec{Deck: deck, Calls: oneClub, Plays: []PlaySpec{{Seat: "E", Card: "AS"}}},
			step:   4,
			reason: "card_not_held",
		},
		{
			name:   "revoke",
			spec:   DealSpec{Deck: deck, Calls: oneClub, Plays: []PlaySpec{{Seat: "E", Card: "3C"}, {Seat: "S", Card: "3D"}}},
			step:   5,
			reason: "revoke",
		},
		{
			name:   "out of turn play",
			spec:   DealSpec{Deck: deck, Calls: oneClub, Plays: []PlaySpec{{Seat: "S", Card: "4C"}}},
			step:   4,
			reason: "out_of_turn",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateReplayTape(tc.spec)
			require.Error(t, err)
			var replayErr *ReplayError
			require.True(t, errors.As(err, &replayErr), "expected ReplayError, got %T", err)
			assert.Equal(t, tc.reason, replayErr.Reason)
			assert.Equal(t, tc.step, replayErr.StepIndex)
			require.NotNil(t, replayErr.Expected)
			assert.NotEmpty(t, replayErr.Expected.Phase)
		})
	}
}

func TestGenerateReplayTape_ExpectedState(t *testing.T) {
	spec := DealSpec{Deck: fullDeckStrings(), Calls: []CallSpec{{Seat: "N", Call: "6NT"}, {Seat: "W", Call: "P"}}}
	_, err := GenerateReplayTape(spec)
	var replayErr *ReplayError
	require.True(t, errors.As(err, &replayErr))
	assert.Equal(t, "East", replayErr.Expected.Seat)
	assert.Equal(t, "auction", replayErr.Expected.Phase)
	assert.Equal(t, []string{"Pass", "7C", "7D", "7H", "7S", "7NT"}, replayErr.Expected.LegalCalls)

	spec = DealSpec{
		Deck:  fullDeckStrings(),
		Calls: []CallSpec{{Seat: "N", Call: "1C"}, {Seat: "E", Call: "P"}, {Seat: "S", Call: "P"}, {Seat: "W", Call: "P"}},
		Plays: []PlaySpec{{Seat: "E", Card: "3C"}, {Seat: "S", Card: "3D"}},
	}
	_, err = GenerateReplayTape(spec)
	require.True(t, errors.As(err, &replayErr))
	assert.Equal(t, "South", replayErr.Expected.Seat)
	assert.ElementsMatch(t, []string{"4C", "8C", "QC"}, replayErr.Expected.LegalPlays)
}

func TestNormalizeSpec_Rejections(t *testing.T) {
	dupHands := &HandsSpec{North: []string{"AS"}, East: []string{"as"}}
	longHand := &HandsSpec{North: append(suitStrings(card.Spade), "AH")}
	cases := []struct {
		name   string
		spec   DealSpec
		reason string
	}{
		{"bad opener", DealSpec{OpeningSeat: "Q"}, "invalid_seat"},
		{"board and deck", DealSpec{Board: "b1", Deck: fullDeckStrings()}, "invalid_deal"},
		{"short deck", DealSpec{Deck: fullDeckStrings()[:51]}, "invalid_deal"},
		{"bad deck card", DealSpec{Deck: append(fullDeckStrings()[:51], "1Z")}, "invalid_card"},
		{"duplicate deck card", DealSpec{Deck: append(fullDeckStrings()[:51], "2C")}, "invalid_deal"},
		{"duplicate hand card", DealSpec{Hands: dupHands}, "invalid_deal"},
		{"fourteen cards", DealSpec{Hands: longHand}, "invalid_deal"},
		{"bad call", DealSpec{Calls: []CallSpec{{Seat: "N", Call: "8C"}}}, "invalid_call"},
		{"bad call seat", DealSpec{Calls: []CallSpec{{Seat: "X", Call: "1C"}}}, "invalid_seat"},
		{"bad card", DealSpec{Plays: []PlaySpec{{Seat: "E", Card: "ZZ"}}}, "invalid_card"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateReplayTape(tc.spec)
			var replayErr *ReplayError
			require.True(t, errors.As(err, &replayErr), "expected ReplayError, got %v", err)
			assert.Equal(t, tc.reason, replayErr.Reason)
		})
	}
}

func TestNormalizeSpec_PartialHandsAndBoard(t *testing.T) {
	ns, err := normalizeSpec(DealSpec{
		Hands: &HandsSpec{West: []string{"AS", "KS", "QS"}},
		RNG:   &RNGSpec{Seed: 3},
	})
	require.NoError(t, err)
	require.Len(t, ns.deck, 52)
	require.NoError(t, card.CheckDeck(ns.deck))
	west := []card.Card{ns.deck[3], ns.deck[7], ns.deck[11]}
	assert.Equal(t, []card.Card{card.CardSpadeA, card.CardSpadeK, card.CardSpadeQ}, west)

	tapeA, err := GenerateReplayTape(DealSpec{Board: "club-night-12"})
	require.NoError(t, err)
	tapeB, err := GenerateReplayTape(DealSpec{Board: "club-night-12"})
	require.NoError(t, err)
	assert.Equal(t, tapeA.Events[0].EnvelopeB64, tapeB.Events[0].EnvelopeB64)
	assert.Equal(t, "club-night-12",
		tapeA.Events[0].Value.GetFields()["payload"].GetStructValue().GetFields()["board"].GetStringValue())
}
