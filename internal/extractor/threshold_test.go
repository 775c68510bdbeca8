package extractor

import "testing"

func TestSnapAlpha(t *testing.T) {
	tests := []struct {
		name      string
		alpha     float64
		threshold float64
		want      float64
	}{
		{"below threshold snaps to zero", 0.01, 0.02, 0},
		{"above upper band snaps to one", 0.99, 0.02, 1},
		{"soft alpha passes through", 0.5, 0.02, 0.5},
		{"exactly threshold passes through", 0.02, 0.02, 0.02},
		{"zero threshold disables snapping", 0.001, 0, 0.001},
		{"exact zero stays zero", 0, 0.05, 0},
		{"exact one stays one", 1, 0.05, 1},
		{"out of range clamps low", -0.1, 0.02, 0},
		{"out of range clamps high", 1.1, 0.02, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapAlpha(tt.alpha, tt.threshold); got != tt.want {
				t.Errorf("SnapAlpha(%v, %v) = %v, want %v", tt.alpha, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestSnapAlpha_RaisingThresholdOnlyMovesTowardSnapPoints(t *testing.T) {
	alphas := []float64{0, 0.009, 0.03, 0.2, 0.5, 0.8, 0.97, 0.991, 1}
	thresholds := []float64{0, 0.01, 0.02, 0.05, 0.1}

	for _, alpha := range alphas {
		for i := 1; i < len(thresholds); i++ {
			lo := SnapAlpha(alpha, thresholds[i-1])
			hi := SnapAlpha(alpha, thresholds[i])

			// Snapping may pull a value to 0 or 1, never push it away
			if alpha <= 0.5 {
				if hi > lo {
					t.Errorf("alpha %v moved away from 0: t=%v gives %v, t=%v gives %v",
						alpha, thresholds[i-1], lo, thresholds[i], hi)
				}
			} else {
				if hi < lo {
					t.Errorf("alpha %v moved away from 1: t=%v gives %v, t=%v gives %v",
						alpha, thresholds[i-1], lo, thresholds[i], hi)
				}
			}

			// Exact snap points never change
			if alpha == 0 && hi != 0 {
				t.Errorf("exact 0 changed to %v at threshold %v", hi, thresholds[i])
			}
			if alpha == 1 && hi != 1 {
				t.Errorf("exact 1 changed to %v at threshold %v", hi, thresholds[i])
			}
		}
	}
}
