package admin

import (
	"testing"
	"time"
)

func TestFillSalesSeries(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	sums := map[string]int64{
		"2026-03-10": 2599,
		"2026-03-08": 1000,
	}

	series := FillSalesSeries(sums, 3, now)

	if len(series) != 3 {
		t.Fatalf("len=%d", len(series))
	}

	want := []SalesPoint{
		{Date: "2026-03-08", AmountCents: 1000},
		{Date: "2026-03-09", AmountCents: 0},
		{Date: "2026-03-10", AmountCents: 2599},
	}
	for i, p := range series {
		if p != want[i] {
			t.Fatalf("series[%d]=%+v want=%+v", i, p, want[i])
		}
	}
}

func TestFillSalesSeries_EmptySums(t *testing.T) {
	series := FillSalesSeries(nil, 7, time.Now())

	if len(series) != 7 {
		t.Fatalf("len=%d", len(series))
	}
	for _, p := range series {
		if p.AmountCents != 0 {
			t.Fatalf("point=%+v", p)
		}
	}
}
