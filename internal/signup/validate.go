package signup

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern is intentionally loose and unanchored.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

const minPasswordLength = 8

// NumSteps is the number of wizard steps.
const NumSteps = 4

// Validator maps the current aggregate to human-readable errors.
// An empty result means the step may advance.
type Validator func(*Aggregate) []string

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateCredentials checks step 1. All applicable errors are collected.
func ValidateCredentials(a *Aggregate) []string {
	var errs []string

	if a.Email == "" {
		errs = append(errs, "Email is required")
	} else if !ValidEmail(a.Email) {
		errs = append(errs, "Please enter a valid email address")
	}

	if a.Password == "" {
		errs = append(errs, "Password is required")
	} else if utf8.RuneCountInString(a.Password) < minPasswordLength {
		errs = append(errs, "Password must be at least 8 characters long")
	}

	if a.ConfirmPassword == "" {
		errs = append(errs, "Please confirm your password")
	} else if a.ConfirmPassword != a.Password {
		errs = append(errs, "Passwords do not match")
	}

	return errs
}

type requirement struct {
	field   Field
	message string
}

func checkRequired(a *Aggregate, reqs []requirement) []string {
	var errs []string
	for _, r := range reqs {
		if strings.TrimSpace(a.Get(r.field)) == "" {
			errs = append(errs, r.message)
		}
	}
	return errs
}

var profileRequirements = []requirement{
	{FieldFirstName, "First name is required"},
	{FieldLastName, "Last name is required"},
	{FieldJobTitle, "Job title is required"},
	{FieldUserPhone, "Phone number is required"},
}

// ValidateProfile checks step 2.
func ValidateProfile(a *Aggregate) []string {
	return checkRequired(a, profileRequirements)
}

var companyRequirements = []requirement{
	{FieldCompanyName, "Company name is required"},
	{FieldIndustry, "Please select an industry"},
	{FieldCompanySize, "Please select a company size"},
	{FieldCountry, "Please select a country"},
	{FieldTimezone, "Please select a timezone"},
	{FieldCurrency, "Please select a currency"},
	{FieldFoundedYear, "Founded year is required"},
	{FieldBusinessType, "Please select a business type"},
}

// ValidateCompany checks step 3. Optional company fields are never validated.
func ValidateCompany(a *Aggregate) []string {
	return checkRequired(a, companyRequirements)
}

// ValidateInvites checks step 4, which never blocks.
func ValidateInvites(*Aggregate) []string {
	return nil
}

var validators = [NumSteps]Validator{
	ValidateCredentials,
	ValidateProfile,
	ValidateCompany,
	ValidateInvites,
}

// ValidateStep runs the validator for step (1-based). Unknown steps have no rules.
func ValidateStep(step int, a *Aggregate) []string {
	if step < 1 || step > NumSteps {
		return nil
	}
	return validators[step-1](a)
}

// ValidateInvite checks a single invite before it is added to the list.
func ValidateInvite(inv Invite) []string {
	var errs []string
	email := strings.TrimSpace(inv.Email)
	if email == "" {
		errs = append(errs, "Invite email is required")
	} else if !ValidEmail(email) {
		errs = append(errs, "Please enter a valid email address")
	}
	if _, err := ParseRole(string(inv.Role)); err != nil {
		errs = append(errs, "Please select a role")
	}
	return errs
}
