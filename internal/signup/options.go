package signup

// Option lists for the select fields of the company profile step.
var (
	Industries = []string{
		"Technology", "Finance", "Healthcare", "Retail", "Manufacturing",
		"Education", "Real Estate", "Hospitality", "Logistics", "Professional Services", "Other",
	}

	CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "501-1000", "1000+"}

	Countries = []string{
		"United States", "Canada", "United Kingdom", "Germany", "France", "Spain",
		"Netherlands", "India", "Australia", "Brazil", "Japan", "Other",
	}

	Timezones = []string{
		"UTC", "America/New_York", "America/Chicago", "America/Denver", "America/Los_Angeles",
		"Europe/London", "Europe/Berlin", "Europe/Paris", "Asia/Kolkata", "Asia/Tokyo", "Australia/Sydney",
	}

	Currencies = []string{"USD", "EUR", "GBP", "CAD", "AUD", "INR", "JPY", "BRL"}

	BusinessTypes = []string{
		"Sole Proprietorship", "Partnership", "LLC", "Corporation", "Non-profit", "Other",
	}

	AnnualRevenueRanges = []string{
		"Under $1M", "$1M - $10M", "$10M - $50M", "$50M - $100M", "Over $100M",
	}
)

// RoleOptions returns the invite roles as strings for select widgets.
func RoleOptions() []string {
	out := make([]string, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}
	return out
}
