package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ringbuffer/internal/testutil"
)

func TestGenerate(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			testutil.RequireFinite(t, w)
			for i := range w {
				if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
					t.Fatalf("symmetric window not symmetric at %d: %v vs %v", i, w[i], w[len(w)-1-i])
				}
			}
		})
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
}

func TestPeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	testutil.RequireSliceNearlyEqual(t, w, []float64{0, 0.5, 1, 0.5}, 1e-12)
}

func TestCoherentGain(t *testing.T) {
	tests := []struct {
		typ  Type
		want float64
	}{
		{TypeRectangular, 1},
		{TypeHann, 0.5},
		{TypeHamming, 0.54},
		{TypeBlackman, 0.42},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			cg, err := CoherentGain(Generate(tt.typ, 1024, WithPeriodic()))
			if err != nil {
				t.Fatalf("CoherentGain error: %v", err)
			}
			if math.Abs(cg-tt.want) > 1e-9 {
				t.Fatalf("CoherentGain() = %v, want %v", cg, tt.want)
			}
		})
	}
}

func TestCoherentGainErrors(t *testing.T) {
	if _, err := CoherentGain(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("CoherentGain(nil) error = %v", err)
	}
	if _, err := CoherentGain([]float64{1, -1}); !errors.Is(err, errZeroCoherentGain) {
		t.Fatalf("CoherentGain([1 -1]) error = %v", err)
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	dst := make([]float64, 4)
	if err := ApplyCoefficients(dst, samples, []float64{0, 0.5, 1, 2}); err != nil {
		t.Fatalf("ApplyCoefficients error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, dst, []float64{0, 1, 3, 8}, 1e-12)
	testutil.RequireSliceEqual(t, samples, []float64{1, 2, 3, 4})

	if err := ApplyCoefficients(dst[:3], samples, []float64{1, 1, 1, 1}); !errors.Is(err, errMismatchedLength) {
		t.Fatalf("ApplyCoefficients length mismatch error = %v", err)
	}
}
