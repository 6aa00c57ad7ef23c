package bridge

import (
	"fmt"
	"math/rand"
	"time"

	"bridge-lite/card"
)

// Phase 牌局阶段
type Phase byte

const (
	PhaseDeal    Phase = 0
	PhaseAuction Phase = 1
	PhasePlay    Phase = 2
	PhaseEnded   Phase = 3
)

var PhaseDictionary = map[Phase]string{
	PhaseDeal:    "deal",
	PhaseAuction: "auction",
	PhasePlay:    "play",
	PhaseEnded:   "ended",
}

func (p Phase) String() string {
	if s, ok := PhaseDictionary[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", byte(p))
}

// AuctionResult is returned by Game.Bid on the call that closes the auction.
type AuctionResult struct {
	Calls     []CallRecord
	PassedOut bool
	Contract  *Contract // nil when passed out
	Leader    Seat      // opening leader, InvalidSeat when passed out
}

// TrickResult is returned by Game.Play on the fourth card of a trick.
type TrickResult struct {
	Number int // 1..13
	Trick  Trick
	Winner Seat
	// Outcome is set on the thirteenth trick.
	Outcome *Outcome
}

// Game owns one deal from the shuffle to the score. It is not safe for
// concurrent use.
type Game struct {
	cfg Config
	rng *rand.Rand

	phase Phase
	hands [4]card.CardList

	auction  *Auction
	contract *Contract

	trick     *Trick
	completed []Trick
	tricksWon [4]int

	outcome *Outcome
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		phase: PhaseDeal,
	}, nil
}

// StartDeal deals from the configured deck source: DeckOverride, Board,
// or the seeded shuffle, in that order.
func (g *Game) StartDeal() error {
	switch {
	case len(g.cfg.DeckOverride) > 0:
		return g.DealFrom(NewSequenceDealer(g.cfg.DeckOverride))
	case g.cfg.Board != "":
		deck, err := card.BoardDeck(g.cfg.Board)
		if err != nil {
			return err
		}
		return g.DealFrom(&deck)
	default:
		deck := card.ShuffledDeck(g.rng)
		return g.DealFrom(&deck)
	}
}

// DealFrom draws 52 cards from d round robin starting at North. A short,
// invalid or duplicated delivery leaves the game undealt.
func (g *Game) DealFrom(d Dealer) error {
	if g.phase != PhaseDeal && g.phase != PhaseEnded {
		return fmt.Errorf("%w: deal during %s", ErrWrongPhase, g.phase)
	}
	if d == nil {
		return errInvariant("nil dealer")
	}
	drawn := make([]card.Card, 52)
	for i := range drawn {
		drawn[i] = d.Deal()
	}
	if err := card.CheckDeck(drawn); err != nil {
		return InvariantViolation(err.Error())
	}

	var hands [4]card.CardList
	for i, c := range drawn {
		hands[i%4].Add(c)
	}
	g.reset()
	g.hands = hands
	g.auction = NewAuction(g.cfg.OpeningSeat)
	g.phase = PhaseAuction
	return nil
}

func (g *Game) reset() {
	g.hands = [4]card.CardList{}
	g.auction = nil
	g.contract = nil
	g.trick = nil
	g.completed = make([]Trick, 0, 13)
	g.tricksWon = [4]int{}
	g.outcome = nil
	g.phase = PhaseDeal
}

// Bid submits a call. The call that closes the auction returns a non-nil
// AuctionResult; a passed-out deal ends immediately.
func (g *Game) Bid(seat Seat, call Call) (*AuctionResult, error) {
	switch g.phase {
	case PhaseDeal:
		return nil, fmt.Errorf("%w: no deal in progress", ErrWrongPhase)
	case PhasePlay, PhaseEnded:
		return nil, fmt.Errorf("%w: %w during %s", ErrAuctionClosed, ErrWrongPhase, g.phase)
	}
	if err := g.auction.Submit(seat, call); err != nil {
		return nil, err
	}
	if !g.auction.Closed() {
		return nil, nil
	}

	contract, ok, err := g.auction.Resolve()
	if err != nil {
		return nil, err
	}
	res := &AuctionResult{Calls: g.auction.History(), PassedOut: !ok, Leader: InvalidSeat}
	if !ok {
		g.phase = PhaseEnded
		return res, nil
	}
	g.contract = &contract
	g.trick = NewTrick(contract.Declarer.Next())
	g.phase = PhasePlay
	res.Contract = &contract
	res.Leader = g.trick.Leader
	return res, nil
}

// Play plays one card. The fourth card of a trick returns a non-nil
// TrickResult, and the thirteenth trick carries the Outcome.
func (g *Game) Play(seat Seat, c card.Card) (*TrickResult, error) {
	if g.phase != PhasePlay {
		return nil, fmt.Errorf("%w: play during %s", ErrWrongPhase, g.phase)
	}
	if next := g.trick.Next(); seat != next {
		return nil, fmt.Errorf("%w: %s played, expected %s", ErrOutOfTurn, seat, next)
	}
	hand := g.hands[seat]
	if !hand.Contains(c) {
		return nil, fmt.Errorf("%w: %s does not hold %s", ErrCardNotHeld, seat, c)
	}
	if err := checkFollow(hand, g.trick, c); err != nil {
		return nil, err
	}

	g.hands[seat].Remove(c)
	g.trick.Plays = append(g.trick.Plays, Play{Seat: seat, Card: c})
	if !g.trick.Complete() {
		return nil, nil
	}

	led, _ := g.trick.LedSuit()
	winner, err := Winner(led, g.contract.Strain, g.trick.Plays)
	if err != nil {
		return nil, err
	}
	g.trick.Winner = winner
	g.tricksWon[winner]++
	sealed := g.trick.Copy()
	g.completed = append(g.completed, sealed)

	res := &TrickResult{Number: len(g.completed), Trick: sealed, Winner: winner}
	if len(g.completed) < 13 {
		g.trick = NewTrick(winner)
		return res, nil
	}

	outcome, err := Score(*g.contract, g.tricksWon)
	if err != nil {
		return nil, err
	}
	g.outcome = &outcome
	g.trick = nil
	g.phase = PhaseEnded
	res.Outcome = &outcome
	return res, nil
}

func (g *Game) Phase() Phase { return g.phase }

// Turn is the seat expected to act, InvalidSeat outside auction and play.
func (g *Game) Turn() Seat {
	switch g.phase {
	case PhaseAuction:
		return g.auction.Turn()
	case PhasePlay:
		return g.trick.Next()
	}
	return InvalidSeat
}

// Hand returns a copy of the seat's remaining cards.
func (g *Game) Hand(seat Seat) card.CardList {
	if !seat.Valid() {
		return nil
	}
	return append(card.CardList(nil), g.hands[seat]...)
}

func (g *Game) Contract() (Contract, bool) {
	if g.contract == nil {
		return Contract{}, false
	}
	return *g.contract, true
}

func (g *Game) Calls() []CallRecord {
	if g.auction == nil {
		return nil
	}
	return g.auction.History()
}

// CurrentTrick returns a copy of the trick in progress.
func (g *Game) CurrentTrick() (Trick, bool) {
	if g.trick == nil {
		return Trick{}, false
	}
	return g.trick.Copy(), true
}

func (g *Game) CompletedTricks() []Trick {
	return append([]Trick(nil), g.completed...)
}

func (g *Game) TricksWon() [4]int { return g.tricksWon }

// LegalCalls is a pure projection of the auction for seat.
func (g *Game) LegalCalls(seat Seat) ([]Call, error) {
	if g.phase != PhaseAuction {
		return nil, fmt.Errorf("%w: calls during %s", ErrWrongPhase, g.phase)
	}
	if seat != g.auction.Turn() {
		return nil, fmt.Errorf("%w: %s is not to call", ErrOutOfTurn, seat)
	}
	return g.auction.LegalCalls(), nil
}

// LegalPlays is a pure projection: the seat's cards of the led suit when it
// has any, otherwise the whole hand.
func (g *Game) LegalPlays(seat Seat) ([]card.Card, error) {
	if g.phase != PhasePlay {
		return nil, fmt.Errorf("%w: plays during %s", ErrWrongPhase, g.phase)
	}
	if seat != g.trick.Next() {
		return nil, fmt.Errorf("%w: %s is not to play", ErrOutOfTurn, seat)
	}
	hand := g.hands[seat]
	if led, ok := g.trick.LedSuit(); ok && hand.HasSuit(led) {
		return hand.OfSuit(led), nil
	}
	return append([]card.Card(nil), hand...), nil
}

// Outcome is available once the thirteenth trick is sealed.
func (g *Game) Outcome() (Outcome, error) {
	if g.phase == PhaseEnded && g.contract == nil {
		return Outcome{}, ErrNoContract
	}
	if g.outcome == nil {
		return Outcome{}, fmt.Errorf("%w: outcome during %s", ErrWrongPhase, g.phase)
	}
	return *g.outcome, nil
}
