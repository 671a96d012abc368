package signupwizard

import "github.com/mark3labs/onboard/internal/signup"

// SubmitResultMsg carries the result of a register call back to Update.
type SubmitResultMsg struct {
	Mode    signup.SubmitMode
	Outcome *signup.Outcome
	Err     error
}

// NavigateMsg is sent by the navigator when signup hands off to the
// application. The wizard quits on receipt.
type NavigateMsg struct {
	Route string
}
