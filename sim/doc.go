// Package sim provides software peripherals for running the bridge loop off
// hardware: a scripted USB host, a FIFO-backed UART with optional loopback,
// a delay timer, a bootloader trigger and a text display.
//
// All types record the calls made on them into a shared Trace so tests can
// check the order in which the bridge touches its peripherals.
package sim
