package policy

import "time"

// Record is one row of the policy book: a single cover transaction month.
// Records are immutable after loading; derived metrics are computed on demand.
type Record struct {
	UnderwrittenCoverID string
	PolicyID            string

	// TransactionMonth is nil when the source value was missing or failed
	// cleaning (unparseable, or outside the book's observation window).
	TransactionMonth *time.Time

	// Client
	Gender        string
	MaritalStatus string
	Citizenship   string
	LegalType     string

	// Location
	Province   string
	PostalCode string

	// Vehicle
	VehicleType      string
	Make             string
	Model            string
	RegistrationYear *float64

	// Plan
	CoverType    string
	CoverGroup   string
	SumInsured   *float64
	CustomValue  *float64

	// Financials. nil means missing after cleaning; a non-nil value is
	// always >= 0.
	TotalPremium *float64
	TotalClaims  *float64
}

// Premium returns the premium treating missing as zero
func (r *Record) Premium() float64 {
	if r.TotalPremium == nil {
		return 0
	}
	return *r.TotalPremium
}

// Claims returns the claim amount treating missing as zero
func (r *Record) Claims() float64 {
	if r.TotalClaims == nil {
		return 0
	}
	return *r.TotalClaims
}

// ClaimOccurred reports whether this record carries a positive claim amount
func (r *Record) ClaimOccurred() bool {
	return r.TotalClaims != nil && *r.TotalClaims > 0
}

// ClaimSeverity returns the claim amount given occurrence, nil otherwise
func (r *Record) ClaimSeverity() *float64 {
	if !r.ClaimOccurred() {
		return nil
	}
	v := *r.TotalClaims
	return &v
}

// Margin returns TotalPremium - TotalClaims, nil when either side is missing
func (r *Record) Margin() *float64 {
	if r.TotalPremium == nil || r.TotalClaims == nil {
		return nil
	}
	m := *r.TotalPremium - *r.TotalClaims
	return &m
}

// Float wraps a value as an optional float
func Float(v float64) *float64 {
	return &v
}
