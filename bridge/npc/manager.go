package npc

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"bridge-lite/bridge"
)

// RandomID seats a RandomBrain instead of a persona.
const RandomID = "random"

// Manager builds brains for the four seats of a table.
type Manager struct {
	registry *PersonaRegistry
	mu       sync.Mutex
	rng      *rand.Rand
}

// NewManager creates an NPC manager with the given persona registry. Brain
// seeds are drawn from seed so a run is reproducible.
func NewManager(registry *PersonaRegistry, seed int64) *Manager {
	return &Manager{
		registry: registry,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Registry returns the underlying PersonaRegistry.
func (m *Manager) Registry() *PersonaRegistry {
	return m.registry
}

// Spawn creates the brain for one seat. id is a persona ID or RandomID.
func (m *Manager) Spawn(seat bridge.Seat, id string) (BrainDecider, error) {
	m.mu.Lock()
	seed := m.rng.Int63()
	m.mu.Unlock()

	if id == RandomID {
		log.Printf("[NPC] Seated random brain at %s", seat)
		return NewRandomBrain(fmt.Sprintf("random-%s", seat), seed), nil
	}
	persona := m.registry.Get(id)
	if persona == nil {
		return nil, fmt.Errorf("spawn NPC at %s: unknown persona %q", seat, id)
	}
	log.Printf("[NPC] Seated %s at %s", persona.Name, seat)
	return NewRuleBrain(persona, seed), nil
}

// SeatAll spawns one brain per seat, North first.
func (m *Manager) SeatAll(ids [4]string) ([4]BrainDecider, error) {
	var brains [4]BrainDecider
	for _, seat := range bridge.Seats {
		b, err := m.Spawn(seat, ids[seat])
		if err != nil {
			return brains, err
		}
		brains[seat] = b
	}
	return brains, nil
}
