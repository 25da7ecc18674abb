package correlation

import (
	"math"
	"testing"
	"time"

	"github.com/macrolens/backend/internal/contracts"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeSeries(t *testing.T) {
	points := []contracts.Observation{
		{Date: day(2026, 3, 5), Value: 3.0},
		{Date: day(2026, 3, 1), Value: 1.0},
		{Date: day(2026, 3, 3), Value: math.NaN()},
		{Date: day(2026, 3, 1), Value: 1.5}, // duplicate date, later sample wins
		{Date: day(2026, 3, 2), Value: math.Inf(1)},
	}

	normalized := normalizeSeries(points)

	if len(normalized) != 2 {
		t.Fatalf("expected 2 points after normalization, got %d", len(normalized))
	}
	if !normalized[0].Date.Equal(day(2026, 3, 1)) || normalized[0].Value != 1.5 {
		t.Errorf("expected deduped first point 2026-03-01=1.5, got %s=%.2f",
			normalized[0].Date.Format("2006-01-02"), normalized[0].Value)
	}
	if !normalized[1].Date.Equal(day(2026, 3, 5)) {
		t.Errorf("expected sorted last point 2026-03-05, got %s", normalized[1].Date.Format("2006-01-02"))
	}
}

func TestAlign_ForwardFillBoundary(t *testing.T) {
	asset := []contracts.Observation{
		{Date: day(2026, 3, 1), Value: 100},
	}
	benchmark := []contracts.Observation{
		{Date: day(2026, 3, 4), Value: 50}, // 3-day gap: fillable
		{Date: day(2026, 3, 5), Value: 51}, // 4-day gap: dropped
	}

	aligned := align(asset, benchmark)

	if len(aligned) != 1 {
		t.Fatalf("expected exactly 1 aligned point, got %d", len(aligned))
	}
	if !aligned[0].Date.Equal(day(2026, 3, 4)) {
		t.Errorf("expected aligned date at the 3-day boundary, got %s", aligned[0].Date.Format("2006-01-02"))
	}
	if aligned[0].Asset != 100 || aligned[0].Benchmark != 50 {
		t.Errorf("unexpected aligned values: %+v", aligned[0])
	}
}

func TestAlign_NoAssetHistory(t *testing.T) {
	asset := []contracts.Observation{
		{Date: day(2026, 3, 10), Value: 100},
	}
	benchmark := []contracts.Observation{
		{Date: day(2026, 3, 5), Value: 50},
	}

	aligned := align(asset, benchmark)
	if len(aligned) != 0 {
		t.Fatalf("expected no aligned points when asset starts after benchmark, got %d", len(aligned))
	}
}

func TestAlign_SameDate(t *testing.T) {
	asset := []contracts.Observation{
		{Date: day(2026, 3, 1), Value: 100},
		{Date: day(2026, 3, 2), Value: 101},
	}
	benchmark := []contracts.Observation{
		{Date: day(2026, 3, 1), Value: 50},
		{Date: day(2026, 3, 2), Value: 51},
	}

	aligned := align(asset, benchmark)
	if len(aligned) != 2 {
		t.Fatalf("expected 2 aligned points, got %d", len(aligned))
	}
	if aligned[1].Asset != 101 {
		t.Errorf("expected same-date value 101, got %.1f", aligned[1].Asset)
	}
}
