package testfixtures

import (
	"github.com/mark3labs/onboard/internal/signup"
)

// Fixed test values
const (
	FixedEmail     = "jane@acme.com"
	FixedPassword  = "password123"
	FixedCompany   = "Acme"
	FixedUserID    = "user-1"
	FixedCompanyID = "company-1"
	FixedToken     = "onb_test"
)

// CredentialsPatch returns valid step 1 values.
func CredentialsPatch() signup.Patch {
	return signup.Patch{
		signup.FieldEmail:           FixedEmail,
		signup.FieldPassword:        FixedPassword,
		signup.FieldConfirmPassword: FixedPassword,
	}
}

// ProfilePatch returns valid step 2 values.
func ProfilePatch() signup.Patch {
	return signup.Patch{
		signup.FieldFirstName: "Jane",
		signup.FieldLastName:  "Doe",
		signup.FieldJobTitle:  "CTO",
		signup.FieldUserPhone: "+1 555 0100",
	}
}

// CompanyPatch returns valid step 3 values.
func CompanyPatch() signup.Patch {
	return signup.Patch{
		signup.FieldCompanyName:  FixedCompany,
		signup.FieldIndustry:     "Technology",
		signup.FieldCompanySize:  "51-200",
		signup.FieldCountry:      "United States",
		signup.FieldFoundedYear:  "2015",
		signup.FieldBusinessType: "Corporation",
		signup.FieldTimezone:     "America/New_York",
		signup.FieldCurrency:     "USD",
	}
}

// CompleteAggregate returns an aggregate that passes every step.
func CompleteAggregate() *signup.Aggregate {
	a := &signup.Aggregate{}
	a.Merge(CredentialsPatch())
	a.Merge(ProfilePatch())
	a.Merge(CompanyPatch())
	return a
}

// AggregateWithInvites returns a complete aggregate with two user-added invites.
func AggregateWithInvites() *signup.Aggregate {
	a := CompleteAggregate()
	a.AddInvite(signup.Invite{Email: "bob@acme.com", Role: signup.RoleManager, Name: "Bob"})
	a.AddInvite(signup.Invite{Email: "eve@acme.com", Role: signup.RoleViewer})
	return a
}

// FixedAccount is the account returned by a successful MockAccounts.
func FixedAccount() *signup.Account {
	return &signup.Account{
		UserID:    FixedUserID,
		Email:     FixedEmail,
		CompanyID: FixedCompanyID,
		Token:     FixedToken,
	}
}
