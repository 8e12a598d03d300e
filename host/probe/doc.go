// Package probe checks a USB-UART bridge from the host side.
//
// Loopback writes known patterns to the virtual COM port and expects them
// back through a TX-RX jumper on the UART side. Transfer sizes around the
// 64-byte packet boundary are included by default because that is where a
// missing zero-length packet stalls the host.
//
// Table lists the UART clock divider the firmware would pick for a set of
// baud rates, with the achieved rate error.
package probe
