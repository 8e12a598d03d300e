package core

import "fmt"

// Delay timer derivation: the timer fires at 3/4 of a UART clock period,
// less the fixed latency of reloading the counter.
const (
	TimerSampleNum = 3
	TimerSampleDen = 4
	TimerOffset    = 3
)

// MaxDivider is the largest value the UART clock divider register holds.
const MaxDivider = 0xFFFF

// Divider is the result of a divider search.
type Divider struct {
	Value       uint16  // Clock divider committed to the UART clock source
	TimerPeriod uint32  // Delay timer period
	Effective   uint32  // Bus clock after prescale
	Ideal       float64 // Real-valued divider for an exact match
	Rate        float64 // Achieved baud rate
	Error       float64 // Rate/requested - 1
}

// ComputeDivider picks the floor or ceiling of the ideal divider, whichever
// lands closer to the requested baud rate. Exact ties go to the floor, the
// candidate with the higher achievable rate.
//
// It has no side effects.
func ComputeDivider(busClock, prescale, baud uint32) (Divider, error) {
	if baud == 0 {
		return Divider{}, ErrInvalidBaudRate
	}
	if prescale == 0 || busClock/prescale == 0 {
		return Divider{}, fmt.Errorf("%w: bus clock %d, prescale %d", ErrInvalidClock, busClock, prescale)
	}
	effective := busClock / prescale

	down := effective / baud
	up := down
	if effective%baud != 0 {
		up++
	}
	if down == 0 {
		down = 1
	}

	// |effective/d - baud| compared exactly: |effective - baud*d| / d,
	// cross-multiplied so ties are detected without rounding.
	distDown := absDiff(uint64(effective), uint64(baud)*uint64(down))
	distUp := absDiff(uint64(effective), uint64(baud)*uint64(up))
	selected := up
	if distDown*uint64(up) <= distUp*uint64(down) {
		selected = down
	}
	if selected > MaxDivider {
		return Divider{}, fmt.Errorf("%w: %d baud needs divider %d (max %d)",
			ErrInvalidBaudRate, baud, selected, MaxDivider)
	}

	rate := float64(effective) / float64(selected)
	return Divider{
		Value:       uint16(selected),
		TimerPeriod: timerPeriod(busClock, selected),
		Effective:   effective,
		Ideal:       float64(effective) / float64(baud),
		Rate:        rate,
		Error:       rate/float64(baud) - 1,
	}, nil
}

// timerPeriod derives the delay timer period from the UART clock produced
// by divider. Never negative.
func timerPeriod(busClock, divider uint32) uint32 {
	uartFreq := busClock / divider
	if uartFreq == 0 {
		return 0
	}
	delay := ((busClock / uartFreq) * TimerSampleNum) / TimerSampleDen
	if delay <= TimerOffset {
		return 0
	}
	return delay - TimerOffset
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
