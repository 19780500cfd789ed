package pricing

import (
	"math"
	"testing"

	"github.com/Alislimm/fantasy-ms/internal/domain/scoring"
)

func intPtr(v int) *int { return &v }

func TestPerformanceScore_EmptyUsesDefault(t *testing.T) {
	got := PerformanceScore(nil)
	if got != DefaultPerformanceScore {
		t.Fatalf("expected default score %v, got %v", DefaultPerformanceScore, got)
	}
}

func TestPerformanceScore_WeightedAverage(t *testing.T) {
	perfs := []scoring.Performance{
		{
			Points:    intPtr(10),
			Rebounds:  intPtr(5),
			Assists:   intPtr(4),
			Turnovers: intPtr(2),
		},
		{
			Points: intPtr(20),
			Steals: intPtr(2),
		},
	}

	// first: 10 + 5*1.2 + 4*1.5 - 2 = 20; second: 20 + 2*3 = 26; avg 23.
	got := PerformanceScore(perfs)
	if math.Abs(got-23.0) > 1e-9 {
		t.Fatalf("expected score 23.0, got %v", got)
	}
}

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		perf      float64
		ownership float64
		want      float64
	}{
		{name: "high performance high ownership", perf: 30, ownership: 40, want: 1.08},
		{name: "low performance low ownership", perf: 2, ownership: 1, want: 0.93},
		{name: "neutral", perf: 15, ownership: 10, want: 1.0},
		{name: "high performance low ownership", perf: 25, ownership: 5, want: 1.03},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Multiplier(tt.perf, tt.ownership)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Multiplier(%v, %v)=%v want=%v", tt.perf, tt.ownership, got, tt.want)
			}
		})
	}
}

func TestNextPrice_CapsAtTenPercent(t *testing.T) {
	// 1.2 would be +200, capped at +100.
	got := NextPrice(1000, 1.2)
	if got != 1100 {
		t.Fatalf("expected 1100, got %d", got)
	}
}

func TestNextPrice_ClampsToFloor(t *testing.T) {
	got := NextPrice(410, 0.93)
	if got != MinPrice {
		t.Fatalf("expected floor %d, got %d", MinPrice, got)
	}
}

func TestNextPrice_ClampsToCeiling(t *testing.T) {
	got := NextPrice(1480, 1.08)
	if got != MaxPrice {
		t.Fatalf("expected ceiling %d, got %d", MaxPrice, got)
	}
}

func TestNextPrice_RoundsHalfUp(t *testing.T) {
	// change = 405 * 0.01 = 4.05; 409.05 rounds to 409.
	if got := NextPrice(405, 1.01); got != 409 {
		t.Fatalf("expected 409, got %d", got)
	}
	// change = 450 * 0.01 = 4.5; 454.5 rounds half-up to 455.
	if got := NextPrice(450, 1.01); got != 455 {
		t.Fatalf("expected 455, got %d", got)
	}
}
