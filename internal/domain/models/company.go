package models

// Sector identifies the business model a company follows. The two real
// sectors have structurally different statements; unknown means detection
// could not commit to either.
type Sector string

const (
	SectorFinance    Sector = "finance"
	SectorNonFinance Sector = "non_finance"
	SectorUnknown    Sector = "unknown"
)

// Sub-sector labels attached by the detector.
const (
	SubSectorBanking       = "banking"
	SubSectorNBFC          = "nbfc"
	SubSectorManufacturing = "manufacturing"
	SubSectorFMCG          = "fmcg"
	SubSectorGeneral       = "general"
)

// CompanyInfo carries provider-supplied company metadata.
type CompanyInfo struct {
	Name         string  `json:"name"`
	Sector       string  `json:"sector"`
	MarketCap    float64 `json:"market_cap"`
	CurrentPrice float64 `json:"current_price"`
	Exchange     string  `json:"exchange"`
}

// RawRecord is one provider-shaped period record. Field names differ by
// sector (sales vs revenue, operating_profit vs financing_profit) so the
// record stays loosely typed until a sector parser claims it.
type RawRecord map[string]any

// Number reads a numeric field, trying each key in order. Providers are
// inconsistent about both field names and numeric encodings.
func (r RawRecord) Number(keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case uint64:
			return float64(n), true
		}
	}
	return 0, false
}

// NumberOr reads a numeric field with a default for missing values.
func (r RawRecord) NumberOr(def float64, keys ...string) float64 {
	if v, ok := r.Number(keys...); ok {
		return v
	}
	return def
}

// String reads a string field.
func (r RawRecord) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Has reports whether any of the keys is present.
func (r RawRecord) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := r[k]; ok {
			return true
		}
	}
	return false
}

// MarketData holds optional market-derived figures supplied alongside the
// statements.
type MarketData struct {
	PE                float64 `json:"pe"`
	PB                float64 `json:"pb"`
	BookValuePerShare float64 `json:"book_value_per_share"`
	SharesOutstanding float64 `json:"shares_outstanding"`
}

// RawCompanyPayload is the provider-shaped input for one company. It is
// immutable once received; every pipeline stage reads it, none mutates it.
type RawCompanyPayload struct {
	CompanyID     string               `json:"company_id"`
	CompanyInfo   CompanyInfo          `json:"company_info"`
	QuarterlyData RecordSeq            `json:"quarterly_data"`
	AnnualData    RecordSeq            `json:"annual_data"`
	BalanceSheet  RecordSeq            `json:"balance_sheet"`
	CashFlow      RecordSeq            `json:"cash_flow"`
	Ratios        map[string][]float64 `json:"ratios,omitempty"`
	MarketData    *MarketData          `json:"market_data,omitempty"`
}

// SectorClassification is the detector's verdict for one company. It is
// advisory: callers pass the declared sector to the parser themselves.
type SectorClassification struct {
	Sector     Sector   `json:"sector"`
	SubSector  string   `json:"sub_sector"`
	Confidence float64  `json:"confidence"`
	Indicators []string `json:"indicators"`
	Warnings   []string `json:"warnings"`
}
