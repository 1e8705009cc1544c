package analysis

import (
	"math"
	"testing"

	"github.com/surendranb/runsight-core-sub000/internal/store"
)

// 10km in 50 minutes: 300 sec/km.
func paceTestRun() store.Run {
	return makeRun(0, 10000, 3000, nil)
}

func weather(tempC, humidityPct, windKmh *float64) *store.Weather {
	return &store.Weather{
		TemperatureC: tempC,
		HumidityPct:  humidityPct,
		WindSpeedKmh: windKmh,
	}
}

func TestAdjustPaceForWeather(t *testing.T) {
	run := paceTestRun()

	tests := []struct {
		name         string
		weather      *store.Weather
		wantAdjusted float64
		wantConf     float64
	}{
		{
			name:         "no weather data",
			weather:      nil,
			wantAdjusted: 300,
			wantConf:     0,
		},
		{
			name: "hot day",
			// (30-20) * 2.5 = 25 sec/km penalty
			weather:      weather(floatPtr(30), nil, nil),
			wantAdjusted: 275,
			wantConf:     0.5,
		},
		{
			name: "hot and humid",
			// 25 + (80-60)/10*1.5 = 28
			weather:      weather(floatPtr(30), floatPtr(80), nil),
			wantAdjusted: 272,
			wantConf:     0.8,
		},
		{
			name: "wind offsets heat",
			// heat 25, cooling (25-15)*0.3 = 3
			weather:      weather(floatPtr(30), floatPtr(50), floatPtr(25)),
			wantAdjusted: 278,
			wantConf:     0.8,
		},
		{
			name: "cold day",
			// (5-0) * 1.5 = 7.5
			weather:      weather(floatPtr(0), floatPtr(50), nil),
			wantAdjusted: 292.5,
			wantConf:     0.8,
		},
		{
			name: "mild conditions no penalty",
			weather:      weather(floatPtr(15), floatPtr(50), floatPtr(5)),
			wantAdjusted: 300,
			wantConf:     0.8,
		},
		{
			name: "extreme heat hits the floor",
			// penalty (48-20)*2.5 + (95-60)/10*1.5 = 75.25, capped at 20%
			weather:      weather(floatPtr(48), floatPtr(95), nil),
			wantAdjusted: 240,
			wantConf:     0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustPaceForWeather(run, tt.weather)
			if math.Abs(got.AdjustedPace-tt.wantAdjusted) > 0.05 {
				t.Errorf("AdjustedPace = %v, want %v", got.AdjustedPace, tt.wantAdjusted)
			}
			if got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
			if got.AdjustedPace < got.OriginalPace*PaceAdjustmentFloor {
				t.Errorf("AdjustedPace %v below floor %v", got.AdjustedPace, got.OriginalPace*PaceAdjustmentFloor)
			}
		})
	}
}

// Whatever the conditions, the adjusted pace never drops below 80% of
// the original.
func TestAdjustPaceFloorHolds(t *testing.T) {
	run := paceTestRun()
	for temp := 20.0; temp <= 50; temp += 5 {
		for hum := 60.0; hum <= 100; hum += 20 {
			got := AdjustPaceForWeather(run, weather(floatPtr(temp), floatPtr(hum), nil))
			if got.AdjustedPace < run.PaceSecPerKm()*PaceAdjustmentFloor-0.05 {
				t.Fatalf("AdjustedPace %v below floor at %v°C / %v%%", got.AdjustedPace, temp, hum)
			}
		}
	}
}

func TestApplyWeatherToTime(t *testing.T) {
	// 10k at 30°C: 25 sec/km over 10 km = +250s
	got := ApplyWeatherToTime(3600, 10000, weather(floatPtr(30), nil, nil))
	if got != 3850 {
		t.Errorf("ApplyWeatherToTime = %d, want 3850", got)
	}

	if got := ApplyWeatherToTime(3600, 10000, nil); got != 3600 {
		t.Errorf("ApplyWeatherToTime without weather = %d, want 3600", got)
	}
}

func TestCalculatePSI(t *testing.T) {
	phys := defaultTestPhysiology()

	t.Run("no data sentinel", func(t *testing.T) {
		run := makeRun(0, 10000, 3000, nil)
		got := CalculatePSI(run, nil, phys)
		if got.Score != 0 || got.Confidence != 0 {
			t.Errorf("Score/Confidence = %v/%v, want 0/0", got.Score, got.Confidence)
		}
		if got.StrainLevel != StrainMinimal {
			t.Errorf("StrainLevel = %v, want %v", got.StrainLevel, StrainMinimal)
		}
	})

	t.Run("hard hot run", func(t *testing.T) {
		// HR 150 -> reserve ratio 0.74 -> band 3.5; 32°C at 85% humidity
		// -> effective 36.5 -> env 5.
		run := makeRun(0, 10000, 3000, floatPtr(150))
		got := CalculatePSI(run, weather(floatPtr(32), floatPtr(85), nil), phys)

		if got.HeartRateStrain != 3.5 {
			t.Errorf("HeartRateStrain = %v, want 3.5", got.HeartRateStrain)
		}
		if got.EnvironmentalStrain != 5 {
			t.Errorf("EnvironmentalStrain = %v, want 5", got.EnvironmentalStrain)
		}
		if got.Score != 8.5 {
			t.Errorf("Score = %v, want 8.5", got.Score)
		}
		if got.StrainLevel != StrainExtreme {
			t.Errorf("StrainLevel = %v, want %v", got.StrainLevel, StrainExtreme)
		}
		if got.Confidence != 0.9 {
			t.Errorf("Confidence = %v, want 0.9", got.Confidence)
		}
	})

	t.Run("long effort duration bonus", func(t *testing.T) {
		// 70 minutes above 60% reserve earns the duration bump.
		short := makeRun(0, 10000, 3000, floatPtr(150))
		long := makeRun(0, 15000, 70*60, floatPtr(150))

		gotShort := CalculatePSI(short, nil, phys)
		gotLong := CalculatePSI(long, nil, phys)
		if gotLong.HeartRateStrain != gotShort.HeartRateStrain+PSIDurationBonus {
			t.Errorf("long-run strain = %v, want %v", gotLong.HeartRateStrain, gotShort.HeartRateStrain+PSIDurationBonus)
		}
	})

	t.Run("HR only halves confidence", func(t *testing.T) {
		run := makeRun(0, 10000, 3000, floatPtr(150))
		got := CalculatePSI(run, nil, phys)
		if got.Confidence != 0.5 {
			t.Errorf("Confidence = %v, want 0.5", got.Confidence)
		}
	})

	t.Run("cool weather scores low", func(t *testing.T) {
		run := makeRun(0, 10000, 3000, nil)
		got := CalculatePSI(run, weather(floatPtr(10), floatPtr(50), nil), phys)
		if got.EnvironmentalStrain != 0 {
			t.Errorf("EnvironmentalStrain = %v, want 0 at 10°C", got.EnvironmentalStrain)
		}
		if got.StrainLevel != StrainMinimal {
			t.Errorf("StrainLevel = %v, want %v", got.StrainLevel, StrainMinimal)
		}
	})
}

// The composite is always the exact sum of its components.
func TestPSIAdditive(t *testing.T) {
	phys := defaultTestPhysiology()

	hrs := []*float64{nil, floatPtr(110), floatPtr(130), floatPtr(150), floatPtr(170), floatPtr(182)}
	temps := []*float64{nil, floatPtr(10), floatPtr(22), floatPtr(33), floatPtr(40)}

	for _, hr := range hrs {
		for _, temp := range temps {
			run := makeRun(0, 10000, 3000, hr)
			var w *store.Weather
			if temp != nil {
				w = weather(temp, floatPtr(70), nil)
			}
			got := CalculatePSI(run, w, phys)
			if sum := got.HeartRateStrain + got.EnvironmentalStrain; math.Abs(got.Score-sum) > 1e-9 {
				t.Fatalf("Score %v != HR %v + env %v", got.Score, got.HeartRateStrain, got.EnvironmentalStrain)
			}
		}
	}
}
