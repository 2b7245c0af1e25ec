package room

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-roomacoustics/internal/testutil"
)

func TestMeanDecibel(t *testing.T) {
	testutil.RequireNear(t, "equal", MeanDecibel(-3, -3), -3, 1e-12)
	testutil.RequireNear(t, "amplitude", MeanDecibel(20*math.Log10(2), 0), 20*math.Log10(1.5), 1e-12)
}

func TestMeanDecibelEnergetic(t *testing.T) {
	testutil.RequireNear(t, "equal", MeanDecibelEnergetic(7, 7), 7, 1e-12)
	testutil.RequireNear(t, "energy", MeanDecibelEnergetic(10*math.Log10(2), 0), 10*math.Log10(1.5), 1e-12)
}

func TestParams_Registry(t *testing.T) {
	want := []ParamID{
		ParamEDT, ParamT20, ParamT30, ParamCentreTime, ParamC50, ParamC80, ParamD50,
		ParamSoundStrength, ParamEarlySoundStrength, ParamLateSoundStrength,
		ParamAWeightedSoundStrength, ParamLevelAdjustedC80, ParamTrebleRatio,
		ParamBassRatio, ParamEarlyBassLevel, ParamEarlyLateralSoundLevel,
		ParamLateLateralSoundLevel, ParamEarlyLateralEnergyFraction,
		ParamIACC, ParamEIACC,
	}

	got := Params()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i, p := range got {
		if p.ID != want[i] {
			t.Errorf("param %d = %s, want %s", i, p.ID, want[i])
		}

		if !p.HasBands() && !p.HasSingleFigure() {
			t.Errorf("%s yields nothing", p.ID)
		}
	}
}

func TestLookupParam(t *testing.T) {
	p, ok := LookupParam(ParamIACC)
	if !ok || p.Kind != KindBinaural {
		t.Fatalf("LookupParam(iacc) = %+v, %v", p, ok)
	}

	if p, ok := LookupParam(ParamBassRatio); !ok || p.HasBands() {
		t.Fatalf("bass ratio = %+v, %v", p, ok)
	}

	if _, ok := LookupParam("rt90"); ok {
		t.Fatal("unexpected parameter rt90")
	}
}

func TestResultBandValues(t *testing.T) {
	r := &Result{
		Param: ParamC80,
		Bands: []BandValue{
			{CenterFreq: 500, Value: 1},
			{CenterFreq: 1000, Value: 3},
			{CenterFreq: 2000, Err: errTest},
		},
	}

	got, err := r.bandValues(500, 1000)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{1, 3}, 0)

	if _, err := r.bandValues(2000); err == nil {
		t.Fatal("expected error for failed band")
	}

	if _, err := r.bandValues(4000); err == nil {
		t.Fatal("expected error for missing band")
	}
}
