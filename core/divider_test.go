package core

import (
	"errors"
	"math"
	"testing"
)

func TestComputeDivider9600(t *testing.T) {
	div, err := ComputeDivider(24000000, 8, 9600)
	if err != nil {
		t.Fatalf("ComputeDivider failed: %v", err)
	}
	if div.Effective != 3000000 {
		t.Errorf("Expected effective clock 3000000, got %d", div.Effective)
	}
	if div.Ideal != 312.5 {
		t.Errorf("Expected ideal divider 312.5, got %v", div.Ideal)
	}
	// 312 gives 9615 (+0.160%), 313 gives 9584 (-0.160%, slightly closer)
	if div.Value != 313 {
		t.Errorf("Expected divider 313, got %d", div.Value)
	}
	if div.TimerPeriod != 231 {
		t.Errorf("Expected timer period 231, got %d", div.TimerPeriod)
	}
	if div.Error >= 0 || div.Error < -0.002 {
		t.Errorf("Expected small negative error, got %v", div.Error)
	}
}

func TestComputeDividerCommonRates(t *testing.T) {
	tests := []struct {
		baud    uint32
		divider uint16
		period  uint32
	}{
		{115200, 26, 16},
		{57600, 52, 36},
		{19200, 156, 114},
		{300, 10000, 7497},
	}
	for _, tt := range tests {
		div, err := ComputeDivider(DefaultBusClockHz, DefaultPrescale, tt.baud)
		if err != nil {
			t.Errorf("%d baud: %v", tt.baud, err)
			continue
		}
		if div.Value != tt.divider || div.TimerPeriod != tt.period {
			t.Errorf("%d baud: got divider %d period %d, want %d %d",
				tt.baud, div.Value, div.TimerPeriod, tt.divider, tt.period)
		}
	}
}

func TestComputeDividerTieGoesToFloor(t *testing.T) {
	tests := []struct {
		busClock, prescale, baud uint32
	}{
		{4, 1, 3},  // 4/1 = +33%, 4/2 = -33%
		{24, 2, 9}, // 12/1 = +33%, 12/2 = -33%
	}
	for _, tt := range tests {
		div, err := ComputeDivider(tt.busClock, tt.prescale, tt.baud)
		if err != nil {
			t.Fatalf("ComputeDivider(%d, %d, %d) failed: %v", tt.busClock, tt.prescale, tt.baud, err)
		}
		floor := tt.busClock / tt.prescale / tt.baud
		if uint32(div.Value) != floor {
			t.Errorf("ComputeDivider(%d, %d, %d) = %d, want floor %d",
				tt.busClock, tt.prescale, tt.baud, div.Value, floor)
		}
	}
}

func TestComputeDividerTimerClamp(t *testing.T) {
	div, err := ComputeDivider(4, 1, 3)
	if err != nil {
		t.Fatalf("ComputeDivider failed: %v", err)
	}
	if div.TimerPeriod != 0 {
		t.Errorf("Expected period clamped to 0, got %d", div.TimerPeriod)
	}
}

func TestComputeDividerAboveEffectiveClock(t *testing.T) {
	div, err := ComputeDivider(24000000, 8, 4000000)
	if err != nil {
		t.Fatalf("ComputeDivider failed: %v", err)
	}
	if div.Value != 1 {
		t.Errorf("Expected divider clamped to 1, got %d", div.Value)
	}
}

func TestComputeDividerInvalid(t *testing.T) {
	if _, err := ComputeDivider(24000000, 8, 0); !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("Zero baud: expected ErrInvalidBaudRate, got %v", err)
	}
	if _, err := ComputeDivider(24000000, 0, 9600); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Zero prescale: expected ErrInvalidClock, got %v", err)
	}
	if _, err := ComputeDivider(4, 8, 9600); !errors.Is(err, ErrInvalidClock) {
		t.Errorf("Zero effective clock: expected ErrInvalidClock, got %v", err)
	}
	// 3 MHz / 1 baud needs a divider far beyond 16 bits
	if _, err := ComputeDivider(24000000, 8, 1); !errors.Is(err, ErrInvalidBaudRate) {
		t.Errorf("Oversized divider: expected ErrInvalidBaudRate, got %v", err)
	}
}

// For every baud the register can represent, the chosen divider is the
// better of floor and ceiling.
func TestComputeDividerPicksClosestCandidate(t *testing.T) {
	const effective = DefaultBusClockHz / DefaultPrescale
	relErr := func(d, baud uint32) float64 {
		return math.Abs(float64(effective)/float64(d)/float64(baud) - 1)
	}

	for baud := uint32(46); baud <= effective; baud += 997 {
		div, err := ComputeDivider(DefaultBusClockHz, DefaultPrescale, baud)
		if err != nil {
			t.Fatalf("%d baud: %v", baud, err)
		}
		if div.Value < 1 {
			t.Fatalf("%d baud: divider %d", baud, div.Value)
		}

		floor := effective / baud
		if floor == 0 {
			floor = 1
		}
		ceil := floor + 1
		got := relErr(uint32(div.Value), baud)
		if best := math.Min(relErr(floor, baud), relErr(ceil, baud)); got > best+1e-12 {
			t.Errorf("%d baud: divider %d error %v, best candidate error %v", baud, div.Value, got, best)
		}
	}
}
