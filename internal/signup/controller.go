package signup

// Step numbers, 1-based as shown to the user.
const (
	StepCredentials = 1
	StepProfile     = 2
	StepCompany     = 3
	StepInvites     = 4
)

// StepStatus is the progress marker state of a step relative to the current one.
type StepStatus int

const (
	StatusPending StepStatus = iota
	StatusCurrent
	StatusComplete
)

// String returns the marker name.
func (s StepStatus) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	case StatusCurrent:
		return "current"
	default:
		return "pending"
	}
}

// StepNames are the titles of steps 1..4.
var StepNames = [NumSteps]string{
	"Account",
	"Your Profile",
	"Company",
	"Invite Team",
}

// Controller owns the current step index and the aggregate.
// It performs no I/O and never validates on its own.
type Controller struct {
	step int
	data *Aggregate
}

// NewController returns a controller on step 1 with an empty aggregate.
func NewController() *Controller {
	return &Controller{step: StepCredentials, data: &Aggregate{}}
}

// NewControllerWith starts from an existing aggregate (headless mode, tests).
func NewControllerWith(a *Aggregate) *Controller {
	if a == nil {
		a = &Aggregate{}
	}
	return &Controller{step: StepCredentials, data: a}
}

// Step returns the current step in [1,4].
func (c *Controller) Step() int {
	return c.step
}

// Next advances one step, clamped at the last step.
func (c *Controller) Next() {
	c.step = min(c.step+1, NumSteps)
}

// Previous goes back one step, clamped at the first step.
func (c *Controller) Previous() {
	c.step = max(c.step-1, StepCredentials)
}

// Update shallow-merges p into the aggregate.
func (c *Controller) Update(p Patch) {
	c.data.Merge(p)
}

// Data returns the live aggregate.
func (c *Controller) Data() *Aggregate {
	return c.data
}

// Validate runs the current step's validator.
func (c *Controller) Validate() []string {
	return ValidateStep(c.step, c.data)
}

// Percent is the progress bar fill, step/4*100.
func (c *Controller) Percent() float64 {
	return float64(c.step) / float64(NumSteps) * 100
}

// StepStatus projects step i (1-based) against the current step.
func (c *Controller) StepStatus(i int) StepStatus {
	switch {
	case i < c.step:
		return StatusComplete
	case i == c.step:
		return StatusCurrent
	default:
		return StatusPending
	}
}

// IsLast reports whether the wizard is on the final step.
func (c *Controller) IsLast() bool {
	return c.step == NumSteps
}
