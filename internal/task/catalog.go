package task

import "fmt"

// Catalog holds task templates in seed order.
type Catalog struct {
	order []string
	m     map[string]Task
}

func NewCatalog() *Catalog {
	return &Catalog{m: map[string]Task{}}
}

func (c *Catalog) Seed(tasks []Task) error {
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := c.m[t.ID]; dup {
			return fmt.Errorf("duplicate task: %s", t.ID)
		}
		c.order = append(c.order, t.ID)
		c.m[t.ID] = t
	}
	return nil
}

func (c *Catalog) List() []Task {
	out := make([]Task, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.m[id])
	}
	return out
}

func (c *Catalog) Get(id string) (Task, bool) {
	t, ok := c.m[id]
	return t, ok
}

// Unlock flips a task to unlocked. It reports whether the flag changed.
func (c *Catalog) Unlock(id string) (bool, error) {
	t, ok := c.m[id]
	if !ok {
		return false, fmt.Errorf("task not found: %s", id)
	}
	if t.Unlocked {
		return false, nil
	}
	t.Unlocked = true
	c.m[id] = t
	return true, nil
}
