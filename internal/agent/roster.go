package agent

import (
	"errors"
	"fmt"
)

// Roster is the fixed set of agents, iterated in seed order.
type Roster struct {
	order []string
	m     map[string]Agent
}

func NewRoster() *Roster {
	return &Roster{m: map[string]Agent{}}
}

func (r *Roster) Seed(agents []Agent) error {
	for _, a := range agents {
		if a.ID == "" {
			return errors.New("agent id is required")
		}
		if _, dup := r.m[a.ID]; dup {
			return fmt.Errorf("duplicate agent: %s", a.ID)
		}
		if a.Efficiency == 0 {
			a.Efficiency = 1
		}
		if a.Efficiency < 0 {
			return fmt.Errorf("agent %s: efficiency must not be negative", a.ID)
		}
		r.order = append(r.order, a.ID)
		r.m[a.ID] = a
	}
	return nil
}

func (r *Roster) List() []Agent {
	out := make([]Agent, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.m[id])
	}
	return out
}

func (r *Roster) Get(id string) (Agent, bool) {
	a, ok := r.m[id]
	return a, ok
}

// Update replaces a known agent; unknown ids are ignored.
func (r *Roster) Update(a Agent) {
	if _, ok := r.m[a.ID]; ok {
		r.m[a.ID] = a
	}
}

func (r *Roster) UpdateMany(agents []Agent) {
	for _, a := range agents {
		r.Update(a)
	}
}

func (r *Roster) Len() int {
	return len(r.order)
}
