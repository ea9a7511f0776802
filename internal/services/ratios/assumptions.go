package ratios

// Assumptions are the proportionality constants used to estimate inputs
// the provider does not capture. They materially change ratio outputs, so
// they are named and overridable (via config) rather than hidden literals.
type Assumptions struct {
	// NetInterestShare estimates net interest income as a share of
	// revenue when financing profit is absent.
	NetInterestShare float64 `yaml:"net_interest_share" default:"0.70"`
	// NonInterestShare estimates non-interest income as a share of
	// revenue when other income is absent.
	NonInterestShare float64 `yaml:"non_interest_share" default:"0.30"`
	// TaxRate is the assumed effective tax rate used when deriving
	// operating expenses from revenue and net income.
	TaxRate float64 `yaml:"tax_rate" default:"0.30"`
}

// DefaultAssumptions returns the provider-era constants.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		NetInterestShare: 0.70,
		NonInterestShare: 0.30,
		TaxRate:          0.30,
	}
}
