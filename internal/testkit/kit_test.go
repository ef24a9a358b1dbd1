package testkit

import (
	"strings"
	"testing"
)

func TestGenerateBook_Deterministic(t *testing.T) {
	cfg := DefaultBookConfig()
	a := GenerateBook(cfg)
	b := GenerateBook(cfg)

	if len(a) != cfg.Records || len(b) != cfg.Records {
		t.Fatalf("got %d/%d records, want %d", len(a), len(b), cfg.Records)
	}
	for i := range a {
		if a[i].Province != b[i].Province || *a[i].TotalPremium != *b[i].TotalPremium {
			t.Fatalf("record %d differs between runs of the same seed", i)
		}
	}
}

func TestGenerateBook_SeededProvinceEffect(t *testing.T) {
	cfg := DefaultBookConfig()
	cfg.Records = 4000
	records := GenerateBook(cfg)

	claims := make(map[string]int)
	totals := make(map[string]int)
	for _, r := range records {
		totals[r.Province]++
		if r.ClaimOccurred() {
			claims[r.Province]++
		}
	}

	riskyRate := float64(claims[cfg.RiskyProvince]) / float64(totals[cfg.RiskyProvince])
	for province, n := range totals {
		if province == cfg.RiskyProvince {
			continue
		}
		rate := float64(claims[province]) / float64(n)
		if riskyRate <= rate {
			t.Errorf("%s claims at %.3f, should sit below %s at %.3f",
				province, rate, cfg.RiskyProvince, riskyRate)
		}
	}
}

func TestWritePipeFile_Layout(t *testing.T) {
	cfg := DefaultBookConfig()
	cfg.Records = 3
	body := WritePipeFile(GenerateBook(cfg))

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "UnderwrittenCoverID|PolicyID|TransactionMonth") {
		t.Errorf("header = %q", lines[0])
	}
	wantCols := strings.Count(lines[0], "|")
	for i, line := range lines[1:] {
		if strings.Count(line, "|") != wantCols {
			t.Errorf("row %d has a different column count than the header", i)
		}
	}
}
