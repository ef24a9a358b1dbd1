// Package testkit generates synthetic policy books with known, seeded group
// effects so analyses can be asserted against ground truth.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"riskbook/domain/policy"
)

// BookConfig controls the synthetic book
type BookConfig struct {
	Seed          int64
	Records       int
	BaseFrequency float64 // claim probability outside risky segments
	RiskyProvince string  // province with elevated frequency, "" to disable
	RiskyUplift   float64 // added claim probability in the risky province
	MeanPremium   float64
	MeanClaim     float64
}

// DefaultBookConfig returns a book with a clear province effect
func DefaultBookConfig() BookConfig {
	return BookConfig{
		Seed:          42,
		Records:       2000,
		BaseFrequency: 0.08,
		RiskyProvince: "Gauteng",
		RiskyUplift:   0.10,
		MeanPremium:   250,
		MeanClaim:     5000,
	}
}

var (
	provinces    = []string{"Gauteng", "Western Cape", "KwaZulu-Natal", "Eastern Cape", "Limpopo"}
	vehicleTypes = []string{"Passenger Vehicle", "Light Delivery Vehicle", "Heavy Commercial", "Bus"}
	genders      = []string{"Male", "Female"}
	coverTypes   = []string{"Own Damage", "Third Party", "Windscreen", "Keys and Alarms"}
	makes        = []string{"TOYOTA", "VOLKSWAGEN", "FORD", "NISSAN", "BMW"}
)

// GenerateBook builds a deterministic synthetic policy book
func GenerateBook(cfg BookConfig) []*policy.Record {
	rng := rand.New(rand.NewSource(cfg.Seed))
	records := make([]*policy.Record, cfg.Records)

	for i := range records {
		province := provinces[rng.Intn(len(provinces))]
		month := policy.ObservationStart.AddDate(0, rng.Intn(19), 0)

		freq := cfg.BaseFrequency
		if cfg.RiskyProvince != "" && province == cfg.RiskyProvince {
			freq += cfg.RiskyUplift
		}

		premium := cfg.MeanPremium * (0.5 + rng.Float64())
		claims := 0.0
		if rng.Float64() < freq {
			claims = cfg.MeanClaim * (0.25 + 1.5*rng.Float64())
		}

		records[i] = &policy.Record{
			UnderwrittenCoverID: fmt.Sprintf("UC%06d", i),
			PolicyID:            fmt.Sprintf("P%05d", i/3), // a few covers per policy
			TransactionMonth:    timePtr(month),
			Gender:              genders[rng.Intn(len(genders))],
			Province:            province,
			PostalCode:          fmt.Sprintf("%04d", 1000+rng.Intn(40)),
			VehicleType:         vehicleTypes[rng.Intn(len(vehicleTypes))],
			Make:                makes[rng.Intn(len(makes))],
			CoverType:           coverTypes[rng.Intn(len(coverTypes))],
			SumInsured:          policy.Float(50000 + 200000*rng.Float64()),
			CustomValue:         policy.Float(40000 + 180000*rng.Float64()),
			RegistrationYear:    policy.Float(float64(2000 + rng.Intn(15))),
			TotalPremium:        policy.Float(premium),
			TotalClaims:         policy.Float(claims),
		}
	}
	return records
}

// WritePipeFile renders records as a |-delimited file body, header included,
// for loader tests
func WritePipeFile(records []*policy.Record) string {
	header := []string{
		policy.ColUnderwrittenCoverID, policy.ColPolicyID, policy.ColTransactionMonth,
		policy.ColGender, policy.ColProvince, policy.ColPostalCode,
		policy.ColVehicleType, policy.ColMake, policy.ColCoverType,
		policy.ColSumInsured, policy.ColCustomValueEstimate, policy.ColRegistrationYear,
		policy.ColTotalPremium, policy.ColTotalClaims,
	}
	out := join(header)
	for _, r := range records {
		row := []string{
			r.UnderwrittenCoverID, r.PolicyID, formatMonth(r.TransactionMonth),
			r.Gender, r.Province, r.PostalCode,
			r.VehicleType, r.Make, r.CoverType,
			formatAmount(r.SumInsured), formatAmount(r.CustomValue), formatAmount(r.RegistrationYear),
			formatAmount(r.TotalPremium), formatAmount(r.TotalClaims),
		}
		out += "\n" + join(row)
	}
	return out + "\n"
}

func join(fields []string) string {
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += "|"
		}
		s += f
	}
	return s
}

func formatMonth(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.6f", *v)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
