package quest

import (
	"testing"
	"time"

	"osirishq/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTracker(t *testing.T) *Tracker {
	t.Helper()
	tr := NewTracker()
	require.NoError(t, tr.Seed([]Quest{
		{ID: "first_leads", Category: CategoryOneTime, Metric: MetricLeads, Target: 10, Reward: ledger.Bundle{Currency: 100}},
		{ID: "daily_leads", Category: CategoryDaily, Metric: MetricLeads, Target: 5, Reward: ledger.Bundle{XP: 20}},
		{ID: "clicker", Category: CategoryMilestone, Metric: MetricClicks, Target: 3, Reward: ledger.Bundle{Currency: 10}},
	}))
	return tr
}

func TestTracker_RecordFansOutByMetric(t *testing.T) {
	tr := seedTracker(t)

	ready := tr.Record(MetricLeads, 5)
	assert.Equal(t, []string{"daily_leads"}, ready)

	first, _ := tr.Get("first_leads")
	assert.Equal(t, 5, first.Current)
	assert.False(t, first.Claimable())

	clicker, _ := tr.Get("clicker")
	assert.Equal(t, 0, clicker.Current)

	ready = tr.Record(MetricLeads, 5)
	assert.Equal(t, []string{"first_leads"}, ready)

	assert.Empty(t, tr.Record(MetricLeads, 1), "already claimable quests are not reported again")
}

func TestTracker_ClaimedQuestsStopCounting(t *testing.T) {
	tr := seedTracker(t)
	tr.Record(MetricClicks, 3)

	q, _ := tr.Get("clicker")
	require.True(t, q.Claimable())
	q.Complete(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	tr.Update(q)

	tr.Record(MetricClicks, 7)
	q, _ = tr.Get("clicker")
	assert.Equal(t, 3, q.Current)
	assert.False(t, q.Claimable())
	require.NotNil(t, q.CompletedAt)
}

func TestQuest_ResetReopens(t *testing.T) {
	q := Quest{ID: "d", Category: CategoryDaily, Metric: MetricClicks, Target: 1, Current: 4}
	q.Complete(time.Now())
	q.Reset()

	assert.Equal(t, 0, q.Current)
	assert.False(t, q.Completed)
	assert.Nil(t, q.CompletedAt)
}

func TestCategory_Repeating(t *testing.T) {
	assert.True(t, CategoryDaily.Repeating())
	assert.True(t, CategoryWeekly.Repeating())
	assert.False(t, CategoryOneTime.Repeating())
	assert.False(t, CategoryMilestone.Repeating())
}

func TestMetricFor(t *testing.T) {
	for _, f := range ledger.Fields {
		assert.True(t, MetricFor(f).Valid(), f)
	}
}

func TestTracker_SeedValidates(t *testing.T) {
	bad := []Quest{
		{Category: CategoryDaily, Metric: MetricXP, Target: 1},
		{ID: "q", Category: "hourly", Metric: MetricXP, Target: 1},
		{ID: "q", Category: CategoryDaily, Metric: "karma", Target: 1},
		{ID: "q", Category: CategoryDaily, Metric: MetricXP},
	}
	for _, q := range bad {
		assert.Error(t, NewTracker().Seed([]Quest{q}))
	}
	tr := seedTracker(t)
	assert.Error(t, tr.Seed([]Quest{{ID: "clicker", Category: CategoryDaily, Metric: MetricXP, Target: 1}}))
}
