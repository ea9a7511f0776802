package models

import "time"

// CompanyOverview is the stored summary of the most recent analysis run
// for a company, served by the overview endpoint.
type CompanyOverview struct {
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	Sector       Sector          `json:"sector"`
	SubSector    string          `json:"sub_sector"`
	LatestPeriod string          `json:"latest_period"`
	QualityScore float64         `json:"quality_score"`
	Universal    UniversalRatios `json:"universal_ratios"`
	AnalyzedAt   time.Time       `json:"analyzed_at"`
}
