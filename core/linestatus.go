package core

import "usbuart/cdc"

// LineCodingText formats the line coding for a display row, e.g. "BR:9600 8N1".
func LineCodingText(lc cdc.LineCoding) string {
	return "BR:" + lc.String()
}

// LineControlText formats the control line state, e.g. "DTR:ON,RTS:OFF".
func LineControlText(state uint8) string {
	return "DTR:" + onOff(state&cdc.ControlDTR != 0) + ",RTS:" + onOff(state&cdc.ControlRTS != 0)
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}
