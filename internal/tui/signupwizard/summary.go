package signupwizard

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"

	"github.com/mark3labs/onboard/internal/signup"
)

// summaryMarkdown describes the created account for the confirmation screen.
func summaryMarkdown(a *signup.Aggregate, out *signup.Outcome) string {
	var b strings.Builder

	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		name = a.Email
	}
	fmt.Fprintf(&b, "Welcome, **%s**. Your workspace for **%s** is ready.\n\n", name, strings.TrimSpace(a.CompanyName))

	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Email | %s |\n", out.Account.Email)
	if out.Account.UserID != "" {
		fmt.Fprintf(&b, "| User ID | `%s` |\n", out.Account.UserID)
	}
	if out.Account.CompanyID != "" {
		fmt.Fprintf(&b, "| Company ID | `%s` |\n", out.Account.CompanyID)
	}
	if a.Industry != "" {
		fmt.Fprintf(&b, "| Industry | %s |\n", a.Industry)
	}
	if a.CompanySize != "" {
		fmt.Fprintf(&b, "| Team size | %s |\n", a.CompanySize)
	}

	if out.InvitesPending > 0 {
		fmt.Fprintf(&b, "\n%d team invite(s) will be sent once invitations are enabled.\n", out.InvitesPending)
	}
	return b.String()
}

// renderMarkdown renders content with glamour, falling back to the raw text.
func renderMarkdown(content string, width int) string {
	if width > 120 {
		width = 120
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	// Remove trailing newline that glamour adds
	return strings.TrimSuffix(rendered, "\n")
}
