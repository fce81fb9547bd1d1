package upgrade

import (
	"fmt"
	"strings"
	"time"
)

// Shop holds upgrades in seed order. Purchased never goes back to false.
type Shop struct {
	order []string
	m     map[string]Upgrade
}

func NewShop() *Shop {
	return &Shop{m: map[string]Upgrade{}}
}

// Seed validates each upgrade and checks that prerequisites exist and never
// loop back on themselves.
func (s *Shop) Seed(upgrades []Upgrade) error {
	for _, u := range upgrades {
		if err := u.Validate(); err != nil {
			return err
		}
		if _, dup := s.m[u.ID]; dup {
			return fmt.Errorf("duplicate upgrade: %s", u.ID)
		}
		s.order = append(s.order, u.ID)
		s.m[u.ID] = u
	}
	for _, u := range s.m {
		if u.Requires == "" {
			continue
		}
		if _, ok := s.m[u.Requires]; !ok {
			return fmt.Errorf("upgrade %s requires unknown upgrade %s", u.ID, u.Requires)
		}
	}
	for _, id := range s.order {
		if err := s.checkChain(id); err != nil {
			return err
		}
	}
	return nil
}

// checkChain follows Requires links from id and fails on a repeated id.
func (s *Shop) checkChain(id string) error {
	seen := map[string]bool{}
	chain := []string{}
	for cur := id; cur != ""; cur = s.m[cur].Requires {
		chain = append(chain, cur)
		if seen[cur] {
			return fmt.Errorf("upgrade prerequisites form a cycle: %s", strings.Join(chain, " -> "))
		}
		seen[cur] = true
	}
	return nil
}

func (s *Shop) List() []Upgrade {
	out := make([]Upgrade, 0, len(s.order))
	for _, id := range s.order {
		u := s.m[id]
		if u.PurchasedAt != nil {
			at := *u.PurchasedAt
			u.PurchasedAt = &at
		}
		out = append(out, u)
	}
	return out
}

func (s *Shop) Get(id string) (Upgrade, bool) {
	u, ok := s.m[id]
	return u, ok
}

// MarkPurchased flips the purchased flag.
func (s *Shop) MarkPurchased(id string, at time.Time) error {
	u, ok := s.m[id]
	if !ok {
		return fmt.Errorf("upgrade not found: %s", id)
	}
	u.Purchased = true
	u.PurchasedAt = &at
	s.m[id] = u
	return nil
}

// PrerequisiteMet is true when the upgrade has no prerequisite or it was bought.
func (s *Shop) PrerequisiteMet(u Upgrade) bool {
	if u.Requires == "" {
		return true
	}
	req, ok := s.m[u.Requires]
	return ok && req.Purchased
}

// Available reports whether the upgrade can be offered right now, ignoring funds.
func (s *Shop) Available(u Upgrade) bool {
	return !u.Purchased && s.PrerequisiteMet(u)
}
