package npc

// PersonalityProfile defines the tunable parameters for a RuleBrain.
type PersonalityProfile struct {
	Boldness   float64 `json:"boldness"`   // 0.0–1.0: lowers opening and raising thresholds
	Randomness float64 `json:"randomness"` // 0.0–1.0: chance of a random legal call
}

// NPCPersona defines a named NPC seat.
type NPCPersona struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Tagline string             `json:"tagline"`
	Brain   PersonalityProfile `json:"brain"`
}
