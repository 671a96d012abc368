// Package signup holds the signup wizard's domain: the form-data aggregate,
// per-step validation, payload construction and the submission coordinator.
package signup

// Field names a scalar field of the Aggregate. The string value doubles as the
// key used in headless YAML files and MCP tool arguments.
type Field string

const (
	// Credentials (step 1)
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"

	// Personal profile (step 2)
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldJobTitle  Field = "jobTitle"
	FieldUserPhone Field = "userPhone"

	// Company profile (step 3)
	FieldCompanyName        Field = "companyName"
	FieldIndustry           Field = "industry"
	FieldCompanySize        Field = "companySize"
	FieldCountry            Field = "country"
	FieldWebsite            Field = "website"
	FieldFoundedYear        Field = "foundedYear"
	FieldAnnualRevenueRange Field = "annualRevenueRange"
	FieldBusinessType       Field = "businessType"
	FieldTimezone           Field = "timezone"
	FieldCurrency           Field = "currency"
	FieldPhone              Field = "phone"
	FieldAddress            Field = "address"
	FieldCity               Field = "city"
	FieldStateProvince      Field = "stateProvince"
	FieldPostalCode         Field = "postalCode"
	FieldDescription        Field = "description"
	FieldMissionStatement   Field = "missionStatement"
)

// Fields lists every scalar field in wizard order.
var Fields = []Field{
	FieldEmail, FieldPassword, FieldConfirmPassword,
	FieldFirstName, FieldLastName, FieldJobTitle, FieldUserPhone,
	FieldCompanyName, FieldIndustry, FieldCompanySize, FieldCountry, FieldWebsite,
	FieldFoundedYear, FieldAnnualRevenueRange, FieldBusinessType, FieldTimezone,
	FieldCurrency, FieldPhone, FieldAddress, FieldCity, FieldStateProvince,
	FieldPostalCode, FieldDescription, FieldMissionStatement,
}

// Aggregate is the signup form data accumulated across all wizard steps.
type Aggregate struct {
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	ConfirmPassword string `yaml:"confirmPassword"`

	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	JobTitle  string `yaml:"jobTitle"`
	UserPhone string `yaml:"userPhone"`

	CompanyName        string `yaml:"companyName"`
	Industry           string `yaml:"industry"`
	CompanySize        string `yaml:"companySize"`
	Country            string `yaml:"country"`
	Website            string `yaml:"website"`
	FoundedYear        string `yaml:"foundedYear"`
	AnnualRevenueRange string `yaml:"annualRevenueRange"`
	BusinessType       string `yaml:"businessType"`
	Timezone           string `yaml:"timezone"`
	Currency           string `yaml:"currency"`
	Phone              string `yaml:"phone"`
	Address            string `yaml:"address"`
	City               string `yaml:"city"`
	StateProvince      string `yaml:"stateProvince"`
	PostalCode         string `yaml:"postalCode"`
	Description        string `yaml:"description"`
	MissionStatement   string `yaml:"missionStatement"`

	Invites []Invite `yaml:"invites"`
}

// Patch is a partial update keyed by field. Only the keys present are written.
type Patch map[Field]string

// ptr returns the storage for f, or nil for an unknown field.
func (a *Aggregate) ptr(f Field) *string {
	switch f {
	case FieldEmail:
		return &a.Email
	case FieldPassword:
		return &a.Password
	case FieldConfirmPassword:
		return &a.ConfirmPassword
	case FieldFirstName:
		return &a.FirstName
	case FieldLastName:
		return &a.LastName
	case FieldJobTitle:
		return &a.JobTitle
	case FieldUserPhone:
		return &a.UserPhone
	case FieldCompanyName:
		return &a.CompanyName
	case FieldIndustry:
		return &a.Industry
	case FieldCompanySize:
		return &a.CompanySize
	case FieldCountry:
		return &a.Country
	case FieldWebsite:
		return &a.Website
	case FieldFoundedYear:
		return &a.FoundedYear
	case FieldAnnualRevenueRange:
		return &a.AnnualRevenueRange
	case FieldBusinessType:
		return &a.BusinessType
	case FieldTimezone:
		return &a.Timezone
	case FieldCurrency:
		return &a.Currency
	case FieldPhone:
		return &a.Phone
	case FieldAddress:
		return &a.Address
	case FieldCity:
		return &a.City
	case FieldStateProvince:
		return &a.StateProvince
	case FieldPostalCode:
		return &a.PostalCode
	case FieldDescription:
		return &a.Description
	case FieldMissionStatement:
		return &a.MissionStatement
	}
	return nil
}

// Get returns the value of f, or "" for an unknown field.
func (a *Aggregate) Get(f Field) string {
	if p := a.ptr(f); p != nil {
		return *p
	}
	return ""
}

// Set writes v to f. It reports false for an unknown field.
func (a *Aggregate) Set(f Field, v string) bool {
	p := a.ptr(f)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Merge applies p as a shallow merge. Unknown keys are ignored.
func (a *Aggregate) Merge(p Patch) {
	for f, v := range p {
		a.Set(f, v)
	}
}

// Clone returns a deep copy; the invite slice is not shared.
func (a *Aggregate) Clone() *Aggregate {
	c := *a
	if a.Invites != nil {
		c.Invites = append([]Invite(nil), a.Invites...)
	}
	return &c
}

// PatchFromMap converts loosely typed input (MCP arguments, decoded JSON) into
// a Patch. Non-string values and unknown keys are skipped.
func PatchFromMap(m map[string]any) Patch {
	p := make(Patch, len(m))
	var scratch Aggregate
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if scratch.ptr(Field(k)) == nil {
			continue
		}
		p[Field(k)] = s
	}
	return p
}
