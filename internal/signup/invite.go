package signup

import (
	"fmt"
	"strings"
)

// Role is the access level granted to an invited team member.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
	RoleViewer   Role = "Viewer"
)

// Roles lists the assignable roles in display order.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee, RoleViewer}

// ParseRole matches s against the known roles, ignoring case.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role: %q", s)
}

// Invite is a pending team-member invitation. Duplicate emails are allowed.
type Invite struct {
	Email string `yaml:"email" json:"email"`
	Role  Role   `yaml:"role" json:"role"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
}

// placeholderInvites fill the invite list on screen until the user adds one.
// They are never submitted, queued or counted.
var placeholderInvites = []Invite{
	{Email: "sarah.johnson@example.com", Role: RoleManager, Name: "Sarah Johnson"},
	{Email: "mike.chen@example.com", Role: RoleEmployee, Name: "Mike Chen"},
	{Email: "emma.davis@example.com", Role: RoleViewer, Name: "Emma Davis"},
}

// DisplayInvites returns the invites to render. When the user has added none,
// it returns the placeholder set and reports placeholder=true.
func (a *Aggregate) DisplayInvites() (invites []Invite, placeholder bool) {
	if len(a.Invites) == 0 {
		return append([]Invite(nil), placeholderInvites...), true
	}
	return a.Invites, false
}

// SubmittableInvites returns only user-added invites.
func (a *Aggregate) SubmittableInvites() []Invite {
	return append([]Invite(nil), a.Invites...)
}

// AddInvite appends inv after normalizing whitespace.
func (a *Aggregate) AddInvite(inv Invite) {
	inv.Email = strings.TrimSpace(inv.Email)
	inv.Name = strings.TrimSpace(inv.Name)
	a.Invites = append(a.Invites, inv)
}

// RemoveInvite deletes the invite at index i. Out-of-range indexes are ignored.
func (a *Aggregate) RemoveInvite(i int) {
	if i < 0 || i >= len(a.Invites) {
		return
	}
	a.Invites = append(a.Invites[:i], a.Invites[i+1:]...)
}
