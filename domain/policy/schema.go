package policy

import (
	"time"

	"riskbook/domain/core"
)

// Column names as they appear in the source header row
const (
	ColUnderwrittenCoverID = "UnderwrittenCoverID"
	ColPolicyID            = "PolicyID"
	ColTransactionMonth    = "TransactionMonth"
	ColGender              = "Gender"
	ColMaritalStatus       = "MaritalStatus"
	ColCitizenship         = "Citizenship"
	ColLegalType           = "LegalType"
	ColProvince            = "Province"
	ColPostalCode          = "PostalCode"
	ColVehicleType         = "VehicleType"
	ColMake                = "make"
	ColModel               = "Model"
	ColRegistrationYear    = "RegistrationYear"
	ColCoverType           = "CoverType"
	ColCoverGroup          = "CoverGroup"
	ColSumInsured          = "SumInsured"
	ColCustomValueEstimate = "CustomValueEstimate"
	ColTotalPremium        = "TotalPremium"
	ColTotalClaims         = "TotalClaims"
)

// RequiredColumns lists the columns a header row must contain for a load to
// proceed. Extra columns in the source file are tolerated and ignored.
func RequiredColumns() []string {
	return []string{
		ColUnderwrittenCoverID,
		ColPolicyID,
		ColTransactionMonth,
		ColProvince,
		ColPostalCode,
		ColTotalPremium,
		ColTotalClaims,
	}
}

// NumericColumns lists the columns coerced to float64 during loading
func NumericColumns() []string {
	return []string{
		ColRegistrationYear,
		ColSumInsured,
		ColCustomValueEstimate,
		ColTotalPremium,
		ColTotalClaims,
	}
}

// Observation window of the book. TransactionMonth values outside it are
// treated as coercion failures and set missing.
var (
	ObservationStart = mustDate(2014, 2)
	ObservationEnd   = mustDate(2015, 9) // exclusive: first month after Aug 2015
)

func mustDate(year, month int) (t time.Time) {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

// InObservationWindow reports whether a transaction month falls inside the
// book's Feb 2014 - Aug 2015 window.
func InObservationWindow(t time.Time) bool {
	return !t.Before(ObservationStart) && t.Before(ObservationEnd)
}

// Grouping dimensions supported by the metric engine and test sweep
const (
	DimProvince    core.Dimension = "Province"
	DimPostalCode  core.Dimension = "PostalCode"
	DimGender      core.Dimension = "Gender"
	DimVehicleType core.Dimension = "VehicleType"
	DimMake        core.Dimension = "Make"
	DimModel       core.Dimension = "Model"
	DimCoverType   core.Dimension = "CoverType"
	DimCoverGroup  core.Dimension = "CoverGroup"
	DimLegalType   core.Dimension = "LegalType"
)

// DimensionValue returns the record's value for a grouping dimension.
// Empty string means missing; the metric engine buckets that as MISSING.
func (r *Record) DimensionValue(dim core.Dimension) string {
	switch dim {
	case DimProvince:
		return r.Province
	case DimPostalCode:
		return r.PostalCode
	case DimGender:
		return r.Gender
	case DimVehicleType:
		return r.VehicleType
	case DimMake:
		return r.Make
	case DimModel:
		return r.Model
	case DimCoverType:
		return r.CoverType
	case DimCoverGroup:
		return r.CoverGroup
	case DimLegalType:
		return r.LegalType
	default:
		return ""
	}
}
