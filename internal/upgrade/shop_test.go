package upgrade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedShop(t *testing.T) *Shop {
	t.Helper()
	s := NewShop()
	require.NoError(t, s.Seed([]Upgrade{
		{ID: "better_mouse", Cost: 50, Effect: Effect{Kind: EffectClickPower, Amount: 1}},
		{ID: "gold_mouse", Cost: 250, Requires: "better_mouse", Effect: Effect{Kind: EffectClickPower, Amount: 4}},
		{ID: "apollo_playbook", Cost: 300, Effect: Effect{Kind: EffectAgentEfficiency, AgentID: "apollo"}},
	}))
	return s
}

func TestShop_PrerequisiteChain(t *testing.T) {
	s := seedShop(t)

	gold, ok := s.Get("gold_mouse")
	require.True(t, ok)
	assert.False(t, s.PrerequisiteMet(gold))
	assert.False(t, s.Available(gold))

	require.NoError(t, s.MarkPurchased("better_mouse", time.Now()))
	assert.True(t, s.PrerequisiteMet(gold))
	assert.True(t, s.Available(gold))

	mouse, _ := s.Get("better_mouse")
	assert.True(t, mouse.Purchased)
	assert.False(t, s.Available(mouse))
	assert.NotNil(t, mouse.PurchasedAt)
}

func TestShop_ListKeepsSeedOrder(t *testing.T) {
	s := seedShop(t)
	ids := []string{}
	for _, u := range s.List() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"better_mouse", "gold_mouse", "apollo_playbook"}, ids)
}

func TestShop_SeedRejectsBadUpgrades(t *testing.T) {
	cases := map[string]Upgrade{
		"missing id":          {Cost: 1, Effect: Effect{Kind: EffectClickPower, Amount: 1}},
		"negative cost":       {ID: "u", Cost: -1, Effect: Effect{Kind: EffectClickPower, Amount: 1}},
		"self requirement":    {ID: "u", Requires: "u", Effect: Effect{Kind: EffectClickPower, Amount: 1}},
		"unknown effect":      {ID: "u", Effect: Effect{Kind: "teleport"}},
		"zero amount":         {ID: "u", Effect: Effect{Kind: EffectMaxEnergy}},
		"fractional clicks":   {ID: "u", Cost: 100, Effect: Effect{Kind: EffectClickPower, Amount: 0.5}},
		"efficiency no agent": {ID: "u", Effect: Effect{Kind: EffectAgentEfficiency}},
		"unlock no task":      {ID: "u", Effect: Effect{Kind: EffectUnlockTask}},
		"unknown prereq":      {ID: "u", Requires: "ghost", Effect: Effect{Kind: EffectClickPower, Amount: 1}},
	}
	for name, u := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, NewShop().Seed([]Upgrade{u}))
		})
	}
}

func TestEffect_ValidateAmounts(t *testing.T) {
	assert.NoError(t, Effect{Kind: EffectClickPower, Amount: 3}.Validate())
	assert.Error(t, Effect{Kind: EffectClickPower, Amount: 1.5}.Validate())
	assert.NoError(t, Effect{Kind: EffectEnergyRegen, Amount: 0.25}.Validate())
	assert.NoError(t, Effect{Kind: EffectMaxEnergy, Amount: 12.5}.Validate())
}

func TestShop_SeedRejectsPrerequisiteCycles(t *testing.T) {
	click := Effect{Kind: EffectClickPower, Amount: 1}

	err := NewShop().Seed([]Upgrade{
		{ID: "a", Requires: "b", Effect: click},
		{ID: "b", Requires: "a", Effect: click},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")

	err = NewShop().Seed([]Upgrade{
		{ID: "root", Effect: click},
		{ID: "x", Requires: "z", Effect: click},
		{ID: "y", Requires: "x", Effect: click},
		{ID: "z", Requires: "y", Effect: click},
	})
	require.Error(t, err)

	assert.NoError(t, NewShop().Seed([]Upgrade{
		{ID: "c", Requires: "b", Effect: click},
		{ID: "b", Requires: "a", Effect: click},
		{ID: "a", Effect: click},
	}))
}

func TestEffect_Describe(t *testing.T) {
	assert.Equal(t, "+2 click power", Effect{Kind: EffectClickPower, Amount: 2}.Describe())
	assert.Equal(t, "apollo works 1.25x faster", Effect{Kind: EffectAgentEfficiency, AgentID: "apollo"}.Describe())
	assert.Equal(t, "unlocks discovery_call", Effect{Kind: EffectUnlockTask, TaskID: "discovery_call"}.Describe())
}
