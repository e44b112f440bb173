package risk

import (
	"testing"

	"github.com/ternarybob/sentinel/internal/models"
)

func TestApplyWeighting(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		direction models.WeightingDirection
		magnitude float64
		want      float64
	}{
		{"increase", 4.2, models.DirectionIncrease, 2.6, 6.8},
		{"increase clamps at ten", 9.0, models.DirectionIncrease, 5.0, 10.0},
		{"decrease", 7.5, models.DirectionDecrease, 3.0, 4.5},
		{"decrease floors at zero", 1.5, models.DirectionDecrease, 4.0, 0.0},
		{"neutral unchanged", 6.3, models.DirectionNeutral, 8.0, 6.3},
		{"neutral rounds", 6.34, models.DirectionNeutral, 0, 6.3},
		{"rounding to one decimal", 4.25, models.DirectionIncrease, 1.11, 5.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &models.RiskWeighting{Direction: tt.direction, Magnitude: tt.magnitude}
			got := ApplyWeighting(tt.current, w)
			if got != tt.want {
				t.Errorf("ApplyWeighting(%.2f, %s %.2f) = %.2f, want %.2f",
					tt.current, tt.direction, tt.magnitude, got, tt.want)
			}
		})
	}
}

func TestApplyWeighting_Bounded(t *testing.T) {
	directions := []models.WeightingDirection{
		models.DirectionIncrease, models.DirectionDecrease, models.DirectionNeutral,
	}
	for c := 0.0; c <= 10.0; c += 0.5 {
		for m := 0.0; m <= 10.0; m += 0.5 {
			for _, d := range directions {
				got := ApplyWeighting(c, &models.RiskWeighting{Direction: d, Magnitude: m})
				if got < 0 || got > 10 {
					t.Fatalf("ApplyWeighting(%.1f, %s %.1f) = %.2f out of [0,10]", c, d, m, got)
				}
			}
		}
	}
}

func TestNeutralWeighting(t *testing.T) {
	w := NeutralWeighting("model unavailable")

	if w.Direction != models.DirectionNeutral {
		t.Errorf("Direction = %s, want neutral", w.Direction)
	}
	if w.Magnitude != 0 {
		t.Errorf("Magnitude = %.1f, want 0", w.Magnitude)
	}
	if w.Confidence != 0.5 {
		t.Errorf("Confidence = %.2f, want 0.5", w.Confidence)
	}
	if w.Components.SupplyDisruption != 5 {
		t.Errorf("component scores should default to mid-range")
	}
}
