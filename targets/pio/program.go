package pio

// PIO machine code for the delay timer. The encoder covers only the
// instructions the program uses and builds on any host, so the sequence is
// testable off target.

// Instruction opcodes, bits 15-13
const (
	opJmp  = 0x0000
	opOut  = 0x6000
	opPull = 0x8080
	opMov  = 0xA000
	opSet  = 0xE000
)

// JMP conditions
const (
	condXDec   = 2 // x--, taken while X was nonzero
	condYDec   = 4 // y--, taken while Y was nonzero
)

// OUT, MOV and SET destinations / MOV sources
const (
	regPins = 0
	regX    = 1
	regY    = 2
)

const pullBlock = 1 << 5

func encJmp(cond, addr uint16) uint16 { return opJmp | cond<<5 | addr&0x1F }

// encOut encodes out dest, bits; a count of 32 is stored as 0
func encOut(dest, bits uint16) uint16 { return opOut | dest<<5 | bits&0x1F }

func encPull(block bool) uint16 {
	if block {
		return opPull | pullBlock
	}
	return opPull
}

func encMov(dest, src uint16) uint16 { return opMov | dest<<5 | src&0x7 }

func encSet(dest, data uint16) uint16 { return opSet | dest<<5 | data&0x1F }

// Program layout, loaded at delayPIOOrigin
const (
	delayCountAddr = 4
	delayWrapAddr  = 5
)

// delayProgram keeps the period in X and counts down in Y:
//
//	pull noblock     ; empty FIFO copies X into OSR, so X survives
//	out x, 32
//	mov y, x
//	set pins, 1
//	jmp y--, 4       ; count down period
//	set pins, 0
//
// One pass takes period+6 PIO cycles and drives one pulse on the pin.
func delayProgram() []uint16 {
	return []uint16{
		// .wrap_target
		encPull(false),                   // 0: pull noblock
		encOut(regX, 32),                 // 1: out x, 32 (period)
		encMov(regY, regX),               // 2: mov y, x
		encSet(regPins, 1),               // 3: set pins, 1
		encJmp(condYDec, delayCountAddr), // 4: jmp y--, 4
		encSet(regPins, 0),               // 5: set pins, 0
		// .wrap
	}
}

// passCycles returns the PIO cycles between pulses for a period
func passCycles(period uint32) uint64 {
	return uint64(period) + 6
}
