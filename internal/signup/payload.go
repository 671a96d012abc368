package signup

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Payload is the body of the register call. Optional fields are pointers and
// are only set when the source value is non-empty after trimming.
type Payload struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`

	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	JobTitle  *string `json:"job_title,omitempty"`
	UserPhone *string `json:"user_phone,omitempty"`

	Industry            *string `json:"industry,omitempty"`
	CompanySizeCategory *string `json:"company_size_category,omitempty"`
	TeamSize            *int    `json:"team_size,omitempty"`
	Country             *string `json:"country,omitempty"`
	Website             *string `json:"website,omitempty"`
	FoundedYear         *int    `json:"founded_year,omitempty"`
	AnnualRevenueRange  *string `json:"annual_revenue_range,omitempty"`
	BusinessType        *string `json:"business_type,omitempty"`
	Timezone            *string `json:"timezone,omitempty"`
	Currency            *string `json:"currency,omitempty"`
	CompanyPhone        *string `json:"company_phone,omitempty"`
	Address             *string `json:"address,omitempty"`
	City                *string `json:"city,omitempty"`
	StateProvince       *string `json:"state_province,omitempty"`
	PostalCode          *string `json:"postal_code,omitempty"`
	Description         *string `json:"description,omitempty"`
	MissionStatement    *string `json:"mission_statement,omitempty"`
}

var (
	digitRun   = regexp.MustCompile(`\d+`)
	leadingInt = regexp.MustCompile(`^[+-]?\d+`)
)

// fallbackIndustry stands in for a missing industry in generated copy.
const fallbackIndustry = "innovative"

// optional returns a pointer to the trimmed value, or nil when it is blank.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseTeamSize extracts the first digit run of a size bucket such as "51-200".
func parseTeamSize(size string) *int {
	m := digitRun.FindString(size)
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// parseYear reads the leading integer of s, so "2015abc" and "1999.0" both
// yield a year.
func parseYear(s string) *int {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

// DefaultDescription is the generated company description.
func DefaultDescription(company, industry string) string {
	if strings.TrimSpace(industry) == "" {
		industry = fallbackIndustry
	}
	return fmt.Sprintf("%s is a forward-thinking %s company dedicated to delivering exceptional value to its customers.", company, industry)
}

// DefaultMissionStatement is the generated mission statement.
func DefaultMissionStatement(company, industry string) string {
	if strings.TrimSpace(industry) == "" {
		industry = fallbackIndustry
	}
	return fmt.Sprintf("At %s, our mission is to drive growth and innovation in the %s space.", company, industry)
}

// BuildPayload converts the aggregate into the register request body.
func BuildPayload(a *Aggregate) Payload {
	p := Payload{
		Email:       strings.TrimSpace(a.Email),
		Password:    a.Password,
		CompanyName: strings.TrimSpace(a.CompanyName),

		FirstName: optional(a.FirstName),
		LastName:  optional(a.LastName),
		JobTitle:  optional(a.JobTitle),
		UserPhone: optional(a.UserPhone),

		Industry:            optional(a.Industry),
		CompanySizeCategory: optional(a.CompanySize),
		TeamSize:            parseTeamSize(a.CompanySize),
		Country:             optional(a.Country),
		Website:             optional(a.Website),
		FoundedYear:         parseYear(a.FoundedYear),
		AnnualRevenueRange:  optional(a.AnnualRevenueRange),
		BusinessType:        optional(a.BusinessType),
		Timezone:            optional(a.Timezone),
		Currency:            optional(a.Currency),
		CompanyPhone:        optional(a.Phone),
		Address:             optional(a.Address),
		City:                optional(a.City),
		StateProvince:       optional(a.StateProvince),
		PostalCode:          optional(a.PostalCode),
		Description:         optional(a.Description),
		MissionStatement:    optional(a.MissionStatement),
	}

	if p.CompanyName != "" {
		industry := ""
		if p.Industry != nil {
			industry = *p.Industry
		}
		if p.Description == nil {
			d := DefaultDescription(p.CompanyName, industry)
			p.Description = &d
		}
		if p.MissionStatement == nil {
			m := DefaultMissionStatement(p.CompanyName, industry)
			p.MissionStatement = &m
		}
	}

	return p
}
