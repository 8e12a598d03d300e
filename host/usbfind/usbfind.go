// Package usbfind scans the USB bus for CDC-ACM virtual serial ports.
//
// It uses libusb through github.com/google/gousb and therefore needs cgo.
package usbfind

import (
	"fmt"
	"sort"

	"github.com/google/gousb"
)

// Device describes one CDC-ACM function found on the bus.
type Device struct {
	Vendor  gousb.ID
	Product gousb.ID
	Bus     int
	Address int

	// Data interface number and its bulk endpoint packet sizes
	DataInterface int
	InPacketSize  int
	OutPacketSize int
}

func (d Device) String() string {
	return fmt.Sprintf("%s:%s bus %d addr %d iface %d (IN %d, OUT %d)",
		d.Vendor, d.Product, d.Bus, d.Address, d.DataInterface, d.InPacketSize, d.OutPacketSize)
}

// ListCDC returns the CDC-ACM functions of every attached device, sorted
// by bus and address. No device is opened.
func ListCDC() ([]Device, error) {
	ctx := gousb.NewContext()
	defer ctx.Close()

	var found []Device
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		found = append(found, cdcFunctions(desc)...)
		return false
	})
	for _, d := range devs {
		d.Close()
	}
	if err != nil {
		return found, fmt.Errorf("usb scan: %w", err)
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Bus != found[j].Bus {
			return found[i].Bus < found[j].Bus
		}
		return found[i].Address < found[j].Address
	})
	return found, nil
}

// cdcFunctions pairs each communications interface with the data class
// interface that carries its bulk endpoints.
func cdcFunctions(desc *gousb.DeviceDesc) []Device {
	var out []Device
	for _, cfg := range desc.Configs {
		hasComm := false
		for _, iface := range cfg.Interfaces {
			for _, alt := range iface.AltSettings {
				switch alt.Class {
				case gousb.ClassComm:
					hasComm = true
				case gousb.ClassData:
					if !hasComm {
						continue
					}
					d := Device{
						Vendor:        desc.Vendor,
						Product:       desc.Product,
						Bus:           desc.Bus,
						Address:       desc.Address,
						DataInterface: iface.Number,
					}
					for _, ep := range alt.Endpoints {
						if ep.TransferType != gousb.TransferTypeBulk {
							continue
						}
						if ep.Direction == gousb.EndpointDirectionIn {
							d.InPacketSize = ep.MaxPacketSize
						} else {
							d.OutPacketSize = ep.MaxPacketSize
						}
					}
					out = append(out, d)
					hasComm = false
				}
			}
		}
	}
	return out
}
