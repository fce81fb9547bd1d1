package quest

import "fmt"

// Tracker holds quests in seed order and fans metric progress out to them.
type Tracker struct {
	order []string
	m     map[string]Quest
}

func NewTracker() *Tracker {
	return &Tracker{m: map[string]Quest{}}
}

func (t *Tracker) Seed(quests []Quest) error {
	for _, q := range quests {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := t.m[q.ID]; dup {
			return fmt.Errorf("duplicate quest: %s", q.ID)
		}
		t.order = append(t.order, q.ID)
		t.m[q.ID] = q
	}
	return nil
}

func (t *Tracker) List() []Quest {
	out := make([]Quest, 0, len(t.order))
	for _, id := range t.order {
		q := t.m[id]
		if q.CompletedAt != nil {
			at := *q.CompletedAt
			q.CompletedAt = &at
		}
		out = append(out, q)
	}
	return out
}

func (t *Tracker) Get(id string) (Quest, bool) {
	q, ok := t.m[id]
	return q, ok
}

func (t *Tracker) Update(q Quest) {
	if _, ok := t.m[q.ID]; !ok {
		return
	}
	t.m[q.ID] = q
}

// Record adds amount to every unclaimed quest tracking metric and returns
// the ids of quests that just became claimable.
func (t *Tracker) Record(metric Metric, amount int) []string {
	var ready []string
	for _, id := range t.order {
		q := t.m[id]
		if q.Metric != metric {
			continue
		}
		was := q.Claimable()
		if !q.Add(amount) {
			continue
		}
		t.m[id] = q
		if !was && q.Claimable() {
			ready = append(ready, id)
		}
	}
	return ready
}
