package wizard

// TabExitForwardMsg is sent when Tab is pressed on the last input.
// Parent should move focus to buttons.
type TabExitForwardMsg struct{}

// TabExitBackwardMsg is sent when Shift+Tab is pressed on the first input.
// Parent should move focus to buttons (from end).
type TabExitBackwardMsg struct{}

// FormSubmitMsg is sent when Enter is pressed inside a form.
type FormSubmitMsg struct{}
