package core

// Bootloader hands control to the firmware updater.
type Bootloader interface {
	// PollTrigger reports whether a firmware update was requested
	PollTrigger() bool

	// Enter transfers control to the bootloader. On hardware it never returns.
	Enter()
}

// LineDisplay shows line settings, one text row at a time.
type LineDisplay interface {
	ShowLine(row uint8, text string)
}
