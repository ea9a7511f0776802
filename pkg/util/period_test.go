package util

import (
	"testing"
	"time"
)

func TestParsePeriodMonthYear(t *testing.T) {
	got, ok := ParsePeriod("Mar 2024")
	if !ok {
		t.Fatalf("expected Mar 2024 to parse")
	}
	if got.Year() != 2024 || got.Month() != time.March {
		t.Fatalf("got %v", got)
	}
}

func TestParsePeriodFiscalYear(t *testing.T) {
	got, ok := ParsePeriod("FY2023")
	if !ok {
		t.Fatalf("expected FY2023 to parse")
	}
	if got.Year() != 2023 {
		t.Fatalf("got %v", got)
	}

	bare, ok := ParsePeriod("2022")
	if !ok {
		t.Fatalf("expected bare year to parse")
	}
	if !bare.Before(got) {
		t.Fatalf("expected 2022 < FY2023")
	}
}

func TestParsePeriodInvalid(t *testing.T) {
	for _, s := range []string{"", "latest", "Q5 20", "FYxx"} {
		if _, ok := ParsePeriod(s); ok {
			t.Fatalf("expected %q not to parse", s)
		}
	}
}

func TestMostRecentFirst(t *testing.T) {
	if !MostRecentFirst([]string{"Mar 2024", "Dec 2023", "Sep 2023"}) {
		t.Fatalf("descending labels reported as unordered")
	}
	if MostRecentFirst([]string{"Dec 2023", "Mar 2024"}) {
		t.Fatalf("ascending labels reported as ordered")
	}
	// unparseable labels are skipped, not treated as violations
	if !MostRecentFirst([]string{"Mar 2024", "latest", "Dec 2023"}) {
		t.Fatalf("unparseable label broke ordering check")
	}
}
