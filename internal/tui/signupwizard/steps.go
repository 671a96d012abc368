package signupwizard

import (
	"github.com/mark3labs/onboard/internal/signup"
	"github.com/mark3labs/onboard/internal/tui/wizard"
)

func text(f signup.Field, label string, required bool) wizard.FieldSpec {
	return wizard.FieldSpec{Key: string(f), Label: label, Required: required}
}

func choice(f signup.Field, label string, required bool, options []string) wizard.FieldSpec {
	return wizard.FieldSpec{
		Key:      string(f),
		Label:    label,
		Kind:     wizard.KindSelect,
		Required: required,
		Options:  options,
	}
}

// stepFields are the form rows of steps 1-3. Step 4 has its own editor.
var stepFields = map[int][]wizard.FieldSpec{
	signup.StepCredentials: {
		{Key: string(signup.FieldEmail), Label: "Email", Placeholder: "you@company.com", Required: true},
		{Key: string(signup.FieldPassword), Label: "Password", Placeholder: "at least 8 characters", Kind: wizard.KindPassword, Required: true},
		{Key: string(signup.FieldConfirmPassword), Label: "Confirm Password", Kind: wizard.KindPassword, Required: true},
	},
	signup.StepProfile: {
		text(signup.FieldFirstName, "First Name", true),
		text(signup.FieldLastName, "Last Name", true),
		text(signup.FieldJobTitle, "Job Title", true),
		text(signup.FieldUserPhone, "Phone", true),
	},
	signup.StepCompany: {
		text(signup.FieldCompanyName, "Company Name", true),
		choice(signup.FieldIndustry, "Industry", true, signup.Industries),
		choice(signup.FieldCompanySize, "Company Size", true, signup.CompanySizes),
		choice(signup.FieldCountry, "Country", true, signup.Countries),
		text(signup.FieldWebsite, "Website", false),
		{Key: string(signup.FieldFoundedYear), Label: "Founded Year", Placeholder: "2015", Required: true, CharLimit: 4},
		choice(signup.FieldAnnualRevenueRange, "Annual Revenue", false, signup.AnnualRevenueRanges),
		choice(signup.FieldBusinessType, "Business Type", true, signup.BusinessTypes),
		choice(signup.FieldTimezone, "Timezone", true, signup.Timezones),
		choice(signup.FieldCurrency, "Currency", true, signup.Currencies),
		text(signup.FieldPhone, "Company Phone", false),
		text(signup.FieldAddress, "Address", false),
		text(signup.FieldCity, "City", false),
		text(signup.FieldStateProvince, "State / Province", false),
		text(signup.FieldPostalCode, "Postal Code", false),
		text(signup.FieldDescription, "Description", false),
		text(signup.FieldMissionStatement, "Mission Statement", false),
	},
}

// newStepForm builds the form for step, prefilled from a.
func newStepForm(step int, a *signup.Aggregate) *wizard.Form {
	form := wizard.NewForm(stepFields[step]...)
	values := make(map[string]string, len(stepFields[step]))
	for _, spec := range stepFields[step] {
		values[spec.Key] = a.Get(signup.Field(spec.Key))
	}
	form.SetValues(values)
	return form
}

// patchFromForm converts form values into an aggregate patch.
func patchFromForm(form *wizard.Form) signup.Patch {
	values := form.Values()
	p := make(signup.Patch, len(values))
	for k, v := range values {
		p[signup.Field(k)] = v
	}
	return p
}
