package replay

import "google.golang.org/protobuf/types/known/structpb"

// DealSpec describes one deal to replay. At most one of Board, Deck and
// Hands may fix the cards; with none of them the deck is shuffled from
// RNG.Seed.
type DealSpec struct {
	OpeningSeat string     `json:"opening_seat"`
	Board       string     `json:"board,omitempty"`
	Deck        []string   `json:"deck,omitempty"`
	Hands       *HandsSpec `json:"hands,omitempty"`
	Calls       []CallSpec `json:"calls"`
	Plays       []PlaySpec `json:"plays"`
	RNG         *RNGSpec   `json:"rng,omitempty"`
}

// HandsSpec pins cards to seats. A hand may list fewer than 13 cards; the
// rest are filled from the remaining deck.
type HandsSpec struct {
	North []string `json:"north,omitempty"`
	East  []string `json:"east,omitempty"`
	South []string `json:"south,omitempty"`
	West  []string `json:"west,omitempty"`
}

type CallSpec struct {
	Seat string `json:"seat"`
	Call string `json:"call"`
}

type PlaySpec struct {
	Seat string `json:"seat"`
	Card string `json:"card"`
}

type RNGSpec struct {
	Seed int64 `json:"seed"`
}

type ReplayTape struct {
	TapeVersion int           `json:"tape_version"`
	TableID     string        `json:"table_id"`
	OpeningSeat string        `json:"opening_seat"`
	Events      []ReplayEvent `json:"events"`
}

type ReplayEvent struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Value       *structpb.Struct `json:"value,omitempty"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}
