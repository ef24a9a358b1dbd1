package ports

import (
	"context"

	"riskbook/domain/policy"
)

// RowWarning records a recoverable per-row coercion issue. The offending
// field is set to missing and loading continues.
type RowWarning struct {
	Row    int    `json:"row"`
	Column string `json:"column"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// LoadResult is the outcome of loading a policy book from a source file
type LoadResult struct {
	Records  []*policy.Record
	Header   []string
	Warnings []RowWarning
}

// LoaderPort parses a source file into immutable policy records.
// Header mismatch is fatal; per-row coercion issues are warnings.
type LoaderPort interface {
	Load(ctx context.Context, path string) (*LoadResult, error)
}
