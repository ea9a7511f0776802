package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	CompanyID string            `json:"company_id" validate:"required"`
	Sector    Sector            `json:"sector" validate:"required,oneof=finance non_finance"`
	Payload   RawCompanyPayload `json:"payload"`
	Persist   bool              `json:"persist" default:"false"`
}

type DetectRequest struct {
	Payload RawCompanyPayload `json:"payload"`
}

type BatchRequest struct {
	Companies []BatchCompany `json:"companies" validate:"required,min=1,dive"`
	Options   BatchOptions   `json:"options"`
}

type OverviewRequest struct {
	CompanyID string `param:"id" json:"company_id" validate:"required"`
}
