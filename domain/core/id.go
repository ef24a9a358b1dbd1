package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	RunID    ID
	ResultID ID

	// Dimension names a categorical grouping column (Province, Gender, ...)
	Dimension string
)

// String conversions for domain IDs
func (id RunID) String() string    { return ID(id).String() }
func (id ResultID) String() string { return ID(id).String() }
func (d Dimension) String() string { return string(d) }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

// ParseDimension parses a string into a Dimension
func ParseDimension(s string) (Dimension, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("dimension cannot be empty")
	}
	return Dimension(strings.TrimSpace(s)), nil
}
