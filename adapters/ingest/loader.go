package ingest

import (
	"context"
	"fmt"

	"riskbook/domain/core"
	"riskbook/domain/policy"
	"riskbook/internal"
	"riskbook/ports"
)

// Loader parses a source file into immutable policy records. Header mismatch
// is fatal; per-row coercion failures set the field missing and are logged
// with row index and column name.
type Loader struct {
	reader  *TableReader
	coercer *FieldCoercer
	logger  *internal.Logger
}

// NewLoader creates a loader. delimiter is "|", "," or "" to sniff.
func NewLoader(delimiter string, logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{
		reader:  NewTableReader(delimiter),
		coercer: NewFieldCoercer(),
		logger:  logger,
	}
}

// Load implements ports.LoaderPort
func (l *Loader) Load(ctx context.Context, path string) (*ports.LoadResult, error) {
	table, err := l.reader.Read(path)
	if err != nil {
		return nil, err
	}

	cols, err := indexHeader(table.Header)
	if err != nil {
		return nil, err
	}

	result := &ports.LoadResult{
		Records: make([]*policy.Record, 0, len(table.Rows)),
		Header:  table.Header,
	}

	for i, row := range table.Rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		record := l.buildRecord(i, row, cols, result)
		result.Records = append(result.Records, record)
	}

	l.logger.Info("loaded %d records from %s (%d row warnings)",
		len(result.Records), path, len(result.Warnings))
	return result, nil
}

// columnIndex maps schema column names to their position in the header
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, h := range header {
		cols[h] = i
	}
	var missing []string
	for _, required := range policy.RequiredColumns() {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewHeaderMismatchError(missing)
	}
	return cols, nil
}

func (l *Loader) buildRecord(rowIdx int, row []string, cols columnIndex, result *ports.LoadResult) *policy.Record {
	cell := func(col string) string {
		idx, ok := cols[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	warn := func(col, raw, reason string) {
		result.Warnings = append(result.Warnings, ports.RowWarning{
			Row: rowIdx, Column: col, Raw: raw, Reason: reason,
		})
		l.logger.Warn("row %d, column %s: %s (%q)", rowIdx, col, reason, raw)
	}

	amount := func(col string, nonNegative bool) *float64 {
		raw := cell(col)
		v, reason := l.coercer.ParseAmount(raw)
		if v == nil {
			if reason != "" {
				warn(col, raw, reason)
			}
			return nil
		}
		if nonNegative && *v < 0 {
			warn(col, raw, "negative amount")
			return nil
		}
		return v
	}

	r := &policy.Record{
		UnderwrittenCoverID: l.coercer.NormalizeCategory(cell(policy.ColUnderwrittenCoverID)),
		PolicyID:            l.coercer.NormalizeCategory(cell(policy.ColPolicyID)),
		Gender:              l.coercer.NormalizeCategory(cell(policy.ColGender)),
		MaritalStatus:       l.coercer.NormalizeCategory(cell(policy.ColMaritalStatus)),
		Citizenship:         l.coercer.NormalizeCategory(cell(policy.ColCitizenship)),
		LegalType:           l.coercer.NormalizeCategory(cell(policy.ColLegalType)),
		Province:            l.coercer.NormalizeCategory(cell(policy.ColProvince)),
		PostalCode:          l.coercer.NormalizeCategory(cell(policy.ColPostalCode)),
		VehicleType:         l.coercer.NormalizeCategory(cell(policy.ColVehicleType)),
		Make:                l.coercer.NormalizeCategory(cell(policy.ColMake)),
		Model:               l.coercer.NormalizeCategory(cell(policy.ColModel)),
		CoverType:           l.coercer.NormalizeCategory(cell(policy.ColCoverType)),
		CoverGroup:          l.coercer.NormalizeCategory(cell(policy.ColCoverGroup)),
	}

	r.RegistrationYear = amount(policy.ColRegistrationYear, false)
	r.SumInsured = amount(policy.ColSumInsured, false)
	r.CustomValue = amount(policy.ColCustomValueEstimate, false)
	r.TotalPremium = amount(policy.ColTotalPremium, true)
	r.TotalClaims = amount(policy.ColTotalClaims, true)

	rawMonth := cell(policy.ColTransactionMonth)
	month, reason := l.coercer.ParseMonth(rawMonth)
	if month == nil {
		if reason != "" {
			warn(policy.ColTransactionMonth, rawMonth, reason)
		}
	} else if !policy.InObservationWindow(*month) {
		warn(policy.ColTransactionMonth, rawMonth,
			fmt.Sprintf("outside observation window %s - %s",
				policy.ObservationStart.Format("2006-01"),
				policy.ObservationEnd.AddDate(0, -1, 0).Format("2006-01")))
	} else {
		r.TransactionMonth = month
	}

	return r
}
