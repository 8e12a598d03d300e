//go:build rp2040

package main

import (
	"machine"

	"tinygo.org/x/drivers/hd44780"
)

const lcdWidth = 16

// lineLCD shows line settings on a 16x2 HD44780 in 4-bit mode.
type lineLCD struct {
	dev  hd44780.Device
	rows [2]string
}

func newLineLCD(data []machine.Pin, e, rs machine.Pin) (*lineLCD, error) {
	dev, err := hd44780.NewGPIO4Bit(data, e, rs, machine.NoPin)
	if err != nil {
		return nil, err
	}
	if err := dev.Configure(hd44780.Config{Width: lcdWidth, Height: 2}); err != nil {
		return nil, err
	}
	return &lineLCD{dev: dev}, nil
}

// ShowLine implements core.LineDisplay
func (l *lineLCD) ShowLine(row uint8, text string) {
	if int(row) >= len(l.rows) {
		return
	}
	if len(text) > lcdWidth {
		text = text[:lcdWidth]
	}
	l.rows[row] = text

	l.dev.ClearDisplay()
	for i, s := range l.rows {
		l.dev.SetCursor(0, uint8(i))
		l.dev.Write([]byte(s))
	}
	l.dev.Display()
}
