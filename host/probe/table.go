package probe

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"usbuart/core"
)

// StandardBauds are the rates terminal programs usually offer.
var StandardBauds = []uint32{
	300, 1200, 2400, 4800, 9600, 14400, 19200, 38400, 57600,
	115200, 230400, 460800, 921600,
}

// Row is the divider choice for one baud rate.
type Row struct {
	Baud    uint32
	Divider core.Divider
	Err     error // Set when the rate cannot be reached
}

// ErrorPercent returns the signed rate error in percent.
func (r Row) ErrorPercent() float64 {
	return r.Divider.Error * 100
}

// Summary aggregates the reachable rows of a table.
type Summary struct {
	Reachable    int
	MeanAbsError float64 // Percent
	MaxAbsError  float64 // Percent
	Worst        uint32  // Baud with the largest error
}

// Table computes the divider for each baud rate.
func Table(busClock, prescale uint32, bauds []uint32) ([]Row, Summary) {
	rows := make([]Row, 0, len(bauds))
	var errs []float64
	var reachable []uint32
	for _, baud := range bauds {
		div, err := core.ComputeDivider(busClock, prescale, baud)
		rows = append(rows, Row{Baud: baud, Divider: div, Err: err})
		if err == nil {
			errs = append(errs, math.Abs(div.Error*100))
			reachable = append(reachable, baud)
		}
	}

	var s Summary
	if len(errs) == 0 {
		return rows, s
	}
	worst := floats.MaxIdx(errs)
	s.Reachable = len(errs)
	s.MeanAbsError = stat.Mean(errs, nil)
	s.MaxAbsError = errs[worst]
	s.Worst = reachable[worst]
	return rows, s
}
