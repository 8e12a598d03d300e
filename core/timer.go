package core

// GetTime returns the current system time in microsecond ticks
func GetTime() uint32 {
	return getSystemTicks()
}

// SetTime sets the current system time; targets feed it from a 1MHz
// hardware counter
func SetTime(ticks uint32) {
	setSystemTicks(ticks)
}
