package replay

import (
	"testing"

	"bridge-lite/bridge"
	"bridge-lite/bridge/npc"
	"bridge-lite/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecFromDeal_ReplaysSimulatedDeal(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g, err := bridge.NewGame(bridge.Config{OpeningSeat: bridge.East, Seed: seed})
		require.NoError(t, err)
		require.NoError(t, g.StartDeal())

		var hands [4]card.CardList
		for _, s := range bridge.Seats {
			hands[s] = g.Hand(s)
		}

		mgr := npc.NewManager(npc.DefaultRegistry(), seed)
		brains, err := mgr.SeatAll([4]string{"steady", npc.RandomID, "pusher", npc.RandomID})
		require.NoError(t, err)
		rec, err := npc.PlayDeal(g, brains)
		require.NoError(t, err)

		spec := SpecFromDeal(bridge.East, hands, rec.Calls, rec.Plays)
		assert.Equal(t, "East", spec.OpeningSeat)
		assert.Len(t, spec.Hands.West, 13)
		assert.Len(t, spec.Calls, len(rec.Calls))

		tape, err := GenerateReplayTape(spec)
		require.NoError(t, err, "seed %d", seed)
		last := tape.Events[len(tape.Events)-1]
		assert.Equal(t, "dealEnd", last.Type)

		payload := last.Value.GetFields()["payload"].GetStructValue().GetFields()
		if rec.PassedOut {
			assert.True(t, payload["passed_out"].GetBoolValue())
			continue
		}
		require.NotNil(t, rec.Outcome)
		assert.Equal(t, rec.Outcome.String(), payload["result"].GetStringValue())
	}
}
