package core

// Stats counts bridge activity since NewBridge.
type Stats struct {
	Iterations  uint64
	Sessions    uint32 // CDC sessions initialized
	HostToUART  uint64 // Bytes forwarded host to UART
	UARTToHost  uint64 // Bytes forwarded UART to host
	Packets     uint32 // Bulk IN data packets
	ZLPs        uint32 // Zero-length packets
	BaudChanges uint32
	Stalls      uint32 // Readiness waits that ran out of polls
	Dropped     uint32 // Host bytes discarded after a stall
	Errors      uint32 // Iterations that returned an error
}
