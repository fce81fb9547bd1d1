package agent

// Status is derived from whether the agent holds a task.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusWorking Status = "working"
)

// completionEpsilon absorbs float drift when fractional efficiencies are summed.
const completionEpsilon = 1e-9

type Agent struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Emoji      string  `json:"emoji,omitempty"`
	Color      string  `json:"color,omitempty"`
	Efficiency float64 `json:"efficiency"`

	// CurrentTask is empty when the agent is idle.
	CurrentTask string `json:"current_task,omitempty"`
	// Worked is effective seconds spent on CurrentTask (elapsed * efficiency).
	Worked float64 `json:"-"`
}

func (a Agent) Busy() bool {
	return a.CurrentTask != ""
}

func (a Agent) Status() Status {
	if a.Busy() {
		return StatusWorking
	}
	return StatusIdle
}

// Start takes a task; callers check Busy first.
func (a *Agent) Start(taskID string) {
	a.CurrentTask = taskID
	a.Worked = 0
}

// Advance accrues work for the elapsed seconds. Efficiency is a speed multiplier.
func (a *Agent) Advance(seconds float64) {
	if !a.Busy() || seconds <= 0 {
		return
	}
	a.Worked += seconds * a.Efficiency
}

// Progress is the completed fraction of a task lasting duration seconds.
func (a Agent) Progress(duration float64) float64 {
	if !a.Busy() || duration <= 0 {
		return 0
	}
	return a.Worked / duration
}

// Done reports whether the current task of the given duration is finished.
func (a Agent) Done(duration float64) bool {
	return a.Busy() && a.Worked >= duration-completionEpsilon
}

// Finish clears the assignment and resets progress.
func (a *Agent) Finish() {
	a.CurrentTask = ""
	a.Worked = 0
}

// Boost multiplies efficiency; factors below 1 are ignored so efficiency only grows.
func (a *Agent) Boost(factor float64) {
	if factor < 1 {
		return
	}
	a.Efficiency *= factor
}
