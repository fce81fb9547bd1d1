package game

import "errors"

var (
	ErrInsufficientEnergy = errors.New("insufficient energy")
	ErrAgentBusy          = errors.New("agent busy")
	ErrTaskLocked         = errors.New("task locked")
	ErrTaskNotOwned       = errors.New("task belongs to another agent")
	ErrQuestNotComplete   = errors.New("quest not complete")
	ErrAlreadyClaimed     = errors.New("quest already claimed")
	ErrNotRepeating       = errors.New("quest does not repeat")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrPrerequisiteNotMet = errors.New("prerequisite not met")
	ErrAlreadyPurchased   = errors.New("upgrade already purchased")

	ErrUnknownAgent   = errors.New("unknown agent")
	ErrUnknownTask    = errors.New("unknown task")
	ErrUnknownQuest   = errors.New("unknown quest")
	ErrUnknownUpgrade = errors.New("unknown upgrade")
)

var kinds = []struct {
	err  error
	kind string
}{
	{ErrInsufficientEnergy, "insufficient_energy"},
	{ErrAgentBusy, "agent_busy"},
	{ErrTaskLocked, "task_locked"},
	{ErrTaskNotOwned, "task_not_owned"},
	{ErrQuestNotComplete, "quest_not_complete"},
	{ErrAlreadyClaimed, "already_claimed"},
	{ErrNotRepeating, "not_repeating"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrPrerequisiteNotMet, "prerequisite_not_met"},
	{ErrAlreadyPurchased, "already_purchased"},
	{ErrUnknownAgent, "unknown_agent"},
	{ErrUnknownTask, "unknown_task"},
	{ErrUnknownQuest, "unknown_quest"},
	{ErrUnknownUpgrade, "unknown_upgrade"},
}

// Kind returns a stable snake_case name for an engine error, or "internal".
func Kind(err error) string {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "internal"
}

// IsNotFound reports whether err names an id the engine does not know.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownAgent) ||
		errors.Is(err, ErrUnknownTask) ||
		errors.Is(err, ErrUnknownQuest) ||
		errors.Is(err, ErrUnknownUpgrade)
}
