package signup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name string
		agg  Aggregate
		want []string
	}{
		{
			name: "empty",
			agg:  Aggregate{},
			want: []string{"Email is required", "Password is required", "Please confirm your password"},
		},
		{
			name: "invalid email short password mismatch",
			agg:  Aggregate{Email: "a@b", Password: "short", ConfirmPassword: "shorter"},
			want: []string{
				"Please enter a valid email address",
				"Password must be at least 8 characters long",
				"Passwords do not match",
			},
		},
		{
			name: "whitespace email is present but invalid",
			agg:  Aggregate{Email: "   ", Password: "password1", ConfirmPassword: "password1"},
			want: []string{"Please enter a valid email address"},
		},
		{
			name: "valid",
			agg:  Aggregate{Email: "a@b.co", Password: "password1", ConfirmPassword: "password1"},
			want: nil,
		},
		{
			name: "unanchored pattern accepts surrounding text",
			agg:  Aggregate{Email: "hello a@b.co world", Password: "12345678", ConfirmPassword: "12345678"},
			want: nil,
		},
		{
			name: "seven multibyte characters is too short",
			agg:  Aggregate{Email: "a@b.co", Password: "ééééééé", ConfirmPassword: "ééééééé"},
			want: []string{"Password must be at least 8 characters long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCredentials(&tt.agg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateProfile(t *testing.T) {
	errs := ValidateProfile(&Aggregate{FirstName: "Ada", JobTitle: " "})
	assert.Equal(t, []string{"Last name is required", "Job title is required", "Phone number is required"}, errs)

	errs = ValidateProfile(&Aggregate{FirstName: "Ada", LastName: "Lovelace", JobTitle: "CTO", UserPhone: "555"})
	assert.Empty(t, errs)
}

func TestValidateCompany(t *testing.T) {
	errs := ValidateCompany(&Aggregate{})
	assert.Equal(t, []string{
		"Company name is required",
		"Please select an industry",
		"Please select a company size",
		"Please select a country",
		"Please select a timezone",
		"Please select a currency",
		"Founded year is required",
		"Please select a business type",
	}, errs)

	full := completeAggregate()
	full.Website = ""
	full.Address = ""
	assert.Empty(t, ValidateCompany(full), "optional company fields must not be validated")
}

func TestValidateInvitesNeverBlocks(t *testing.T) {
	assert.Empty(t, ValidateInvites(&Aggregate{}))
	assert.Empty(t, ValidateStep(StepInvites, &Aggregate{}))
}

func TestValidateStepOutOfRange(t *testing.T) {
	assert.Nil(t, ValidateStep(0, &Aggregate{}))
	assert.Nil(t, ValidateStep(5, &Aggregate{}))
}

func TestValidateStepDispatch(t *testing.T) {
	a := &Aggregate{}
	require.Len(t, ValidateStep(StepCredentials, a), 3)
	require.Len(t, ValidateStep(StepProfile, a), 4)
	require.Len(t, ValidateStep(StepCompany, a), 8)
}

func TestValidateInvite(t *testing.T) {
	assert.Empty(t, ValidateInvite(Invite{Email: "x@y.io", Role: RoleAdmin}))
	assert.Empty(t, ValidateInvite(Invite{Email: " x@y.io ", Role: "viewer"}))
	assert.Equal(t, []string{"Invite email is required", "Please select a role"}, ValidateInvite(Invite{}))
	assert.Equal(t, []string{"Please enter a valid email address"}, ValidateInvite(Invite{Email: "nope", Role: RoleManager}))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("MANAGER")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

// completeAggregate returns data that passes every step.
func completeAggregate() *Aggregate {
	return &Aggregate{
		Email:           "ada@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Ada",
		LastName:        "Lovelace",
		JobTitle:        "CTO",
		UserPhone:       "+1 555 0100",
		CompanyName:     "Acme",
		Industry:        "Technology",
		CompanySize:     "51-200",
		Country:         "United States",
		Website:         "https://acme.test",
		FoundedYear:     "2015",
		BusinessType:    "Corporation",
		Timezone:        "America/New_York",
		Currency:        "USD",
		Address:         "1 Main St",
	}
}
