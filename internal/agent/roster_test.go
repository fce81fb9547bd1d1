package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_SeedKeepsOrderAndDefaultsEfficiency(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Seed([]Agent{
		{ID: "thoth", Name: "Thoth"},
		{ID: "apollo", Name: "Apollo", Efficiency: 1.5},
	}))

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "thoth", list[0].ID)
	assert.Equal(t, 1.0, list[0].Efficiency)
	assert.Equal(t, 1.5, list[1].Efficiency)
}

func TestRoster_SeedRejectsDuplicates(t *testing.T) {
	r := NewRoster()
	err := r.Seed([]Agent{{ID: "iris"}, {ID: "iris"}})
	assert.Error(t, err)

	assert.Error(t, NewRoster().Seed([]Agent{{ID: ""}}))
	assert.Error(t, NewRoster().Seed([]Agent{{ID: "x", Efficiency: -1}}))
}

func TestRoster_UpdateIgnoresUnknown(t *testing.T) {
	r := NewRoster()
	require.NoError(t, r.Seed([]Agent{{ID: "horus"}}))

	r.Update(Agent{ID: "ghost"})
	_, ok := r.Get("ghost")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestAgent_WorkCycle(t *testing.T) {
	a := Agent{ID: "atlas", Efficiency: 1}
	assert.Equal(t, StatusIdle, a.Status())

	a.Start("ship")
	assert.Equal(t, StatusWorking, a.Status())

	for i := 0; i < 29; i++ {
		a.Advance(1)
	}
	assert.False(t, a.Done(30))
	assert.InDelta(t, 29.0/30.0, a.Progress(30), 1e-12)

	a.Advance(1)
	assert.True(t, a.Done(30))

	a.Finish()
	assert.False(t, a.Busy())
	assert.Equal(t, 0.0, a.Worked)
	assert.Equal(t, 0.0, a.Progress(30))
}

func TestAgent_EfficiencyIsSpeed(t *testing.T) {
	a := Agent{ID: "apollo", Efficiency: 1}
	a.Boost(1.25)
	a.Boost(0.5)
	assert.Equal(t, 1.25, a.Efficiency)

	a.Start("outreach")
	for i := 0; i < 24; i++ {
		a.Advance(1)
	}
	// 24s * 1.25 = 30 effective seconds
	assert.True(t, a.Done(30))
}

func TestAgent_AdvanceIgnoredWhenIdle(t *testing.T) {
	a := Agent{ID: "osiris", Efficiency: 1}
	a.Advance(10)
	assert.Zero(t, a.Worked)
}
