package npc

import (
	"math/rand"

	"bridge-lite/bridge"
)

// RandomBrain picks uniformly among the legal actions.
type RandomBrain struct {
	name string
	rng  *rand.Rand
}

func NewRandomBrain(name string, seed int64) *RandomBrain {
	return &RandomBrain{name: name, rng: rand.New(rand.NewSource(seed))}
}

func (b *RandomBrain) Name() string { return b.name }

func (b *RandomBrain) Decide(view GameView) Decision {
	switch view.Phase {
	case bridge.PhaseAuction:
		if len(view.LegalCalls) == 0 {
			return Decision{Call: bridge.Pass{}}
		}
		return Decision{Call: view.LegalCalls[b.rng.Intn(len(view.LegalCalls))]}
	case bridge.PhasePlay:
		if len(view.LegalPlays) == 0 {
			return Decision{}
		}
		return Decision{Card: view.LegalPlays[b.rng.Intn(len(view.LegalPlays))]}
	}
	return Decision{}
}
