package core

import (
	"errors"
	"testing"
)

func TestNewID_UniqueAndNonEmpty(t *testing.T) {
	a, b := NewID(), NewID()
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("generated IDs should not be empty")
	}
	if a == b {
		t.Error("two generated IDs should differ")
	}
	if len(a.String()) != 36 {
		t.Errorf("ID %q is not a canonical UUID", a)
	}
}

func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID(""); err == nil {
		t.Error("empty run ID should be rejected")
	}
	id, err := ParseRunID("run-123")
	if err != nil || id.String() != "run-123" {
		t.Errorf("got (%v, %v)", id, err)
	}
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("  Province ")
	if err != nil || d != "Province" {
		t.Errorf("got (%v, %v), want trimmed Province", d, err)
	}
	if _, err := ParseDimension("   "); err == nil {
		t.Error("blank dimension should be rejected")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	if !errors.Is(ErrHeaderMismatch, ErrDataFormat) {
		t.Error("header mismatch is a data format error")
	}
	err := NewHeaderMismatchError([]string{"TotalPremium"})
	if !IsDataFormat(err) {
		t.Error("IsDataFormat should match a header mismatch")
	}

	insufficient := NewInsufficientDataError("Gauteng", 12, 30)
	if !IsInsufficientData(insufficient) {
		t.Error("IsInsufficientData should match")
	}
	if IsDataFormat(insufficient) {
		t.Error("statistical validity errors are not data format errors")
	}
}
