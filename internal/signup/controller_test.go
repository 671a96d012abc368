package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_StartsOnFirstStep(t *testing.T) {
	c := NewController()
	assert.Equal(t, StepCredentials, c.Step())
	assert.Equal(t, 25.0, c.Percent())
	assert.False(t, c.IsLast())
	assert.NotNil(t, c.Data())
}

func TestController_StepIsAlwaysClamped(t *testing.T) {
	c := NewController()
	ops := []func(){c.Next, c.Next, c.Next, c.Next, c.Next, c.Previous, c.Next, c.Next}
	for i := 0; i < 40; i++ {
		ops = append(ops, c.Previous)
	}
	for _, op := range ops {
		op()
		require.GreaterOrEqual(t, c.Step(), 1)
		require.LessOrEqual(t, c.Step(), NumSteps)
	}
	assert.Equal(t, StepCredentials, c.Step())
}

func TestController_NextStopsAtLastStep(t *testing.T) {
	c := NewController()
	for i := 0; i < 10; i++ {
		c.Next()
	}
	assert.Equal(t, StepInvites, c.Step())
	assert.True(t, c.IsLast())
	assert.Equal(t, 100.0, c.Percent())
}

func TestController_PreviousDoesNotRevalidate(t *testing.T) {
	c := NewController()
	c.Next()
	c.Next()
	// Step 2 data is empty, moving back is still allowed.
	c.Previous()
	assert.Equal(t, StepProfile, c.Step())
}

func TestController_ValidateUsesCurrentStep(t *testing.T) {
	c := NewController()
	assert.Contains(t, c.Validate(), "Email is required")

	c.Update(Patch{FieldEmail: "a@b.co", FieldPassword: "password1", FieldConfirmPassword: "password1"})
	assert.Empty(t, c.Validate())

	c.Next()
	assert.Contains(t, c.Validate(), "First name is required")
}

func TestController_StepStatus(t *testing.T) {
	c := NewController()
	c.Next()
	c.Next()

	assert.Equal(t, StatusComplete, c.StepStatus(1))
	assert.Equal(t, StatusComplete, c.StepStatus(2))
	assert.Equal(t, StatusCurrent, c.StepStatus(3))
	assert.Equal(t, StatusPending, c.StepStatus(4))
	assert.Equal(t, "current", c.StepStatus(3).String())
}

func TestController_UpdateIsShallowMerge(t *testing.T) {
	c := NewControllerWith(&Aggregate{Email: "keep@me.io", FirstName: "Old"})
	c.Update(Patch{FieldFirstName: "New"})
	assert.Equal(t, "keep@me.io", c.Data().Email)
	assert.Equal(t, "New", c.Data().FirstName)
}

func TestNewControllerWithNil(t *testing.T) {
	c := NewControllerWith(nil)
	require.NotNil(t, c.Data())
	assert.Equal(t, StepCredentials, c.Step())
}
