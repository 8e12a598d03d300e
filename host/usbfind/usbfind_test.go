package usbfind

import (
	"testing"

	"github.com/google/gousb"
)

func bulkPair(in, out int) map[gousb.EndpointAddress]gousb.EndpointDesc {
	return map[gousb.EndpointAddress]gousb.EndpointDesc{
		0x81: {Direction: gousb.EndpointDirectionIn, TransferType: gousb.TransferTypeBulk, MaxPacketSize: in},
		0x02: {Direction: gousb.EndpointDirectionOut, TransferType: gousb.TransferTypeBulk, MaxPacketSize: out},
	}
}

func notify() map[gousb.EndpointAddress]gousb.EndpointDesc {
	return map[gousb.EndpointAddress]gousb.EndpointDesc{
		0x83: {Direction: gousb.EndpointDirectionIn, TransferType: gousb.TransferTypeInterrupt, MaxPacketSize: 8},
	}
}

func iface(number int, class gousb.Class, eps map[gousb.EndpointAddress]gousb.EndpointDesc) gousb.InterfaceDesc {
	return gousb.InterfaceDesc{
		Number:      number,
		AltSettings: []gousb.InterfaceSetting{{Number: number, Class: class, Endpoints: eps}},
	}
}

func device(ifaces ...gousb.InterfaceDesc) *gousb.DeviceDesc {
	return &gousb.DeviceDesc{
		Bus:     1,
		Address: 7,
		Vendor:  0x2e8a,
		Product: 0x000a,
		Configs: map[int]gousb.ConfigDesc{
			1: {Number: 1, Interfaces: ifaces},
		},
	}
}

func TestCDCFunctions(t *testing.T) {
	tests := []struct {
		name string
		desc *gousb.DeviceDesc
		want []Device
	}{
		{
			name: "single ACM function",
			desc: device(
				iface(0, gousb.ClassComm, notify()),
				iface(1, gousb.ClassData, bulkPair(64, 64)),
			),
			want: []Device{{DataInterface: 1, InPacketSize: 64, OutPacketSize: 64}},
		},
		{
			name: "data interface without comm interface",
			desc: device(
				iface(0, gousb.ClassVendorSpec, nil),
				iface(1, gousb.ClassData, bulkPair(64, 64)),
			),
		},
		{
			name: "two ACM functions",
			desc: device(
				iface(0, gousb.ClassComm, notify()),
				iface(1, gousb.ClassData, bulkPair(64, 64)),
				iface(2, gousb.ClassComm, notify()),
				iface(3, gousb.ClassData, bulkPair(512, 512)),
			),
			want: []Device{
				{DataInterface: 1, InPacketSize: 64, OutPacketSize: 64},
				{DataInterface: 3, InPacketSize: 512, OutPacketSize: 512},
			},
		},
		{
			name: "comm interface consumed by first data interface",
			desc: device(
				iface(0, gousb.ClassComm, notify()),
				iface(1, gousb.ClassData, bulkPair(64, 64)),
				iface(2, gousb.ClassData, bulkPair(64, 64)),
			),
			want: []Device{{DataInterface: 1, InPacketSize: 64, OutPacketSize: 64}},
		},
		{
			name: "interrupt endpoints ignored",
			desc: device(
				iface(0, gousb.ClassComm, notify()),
				iface(1, gousb.ClassData, notify()),
			),
			want: []Device{{DataInterface: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cdcFunctions(tt.desc)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d functions, got %d: %v", len(tt.want), len(got), got)
			}
			for i, w := range tt.want {
				w.Vendor, w.Product, w.Bus, w.Address = 0x2e8a, 0x000a, 1, 7
				if got[i] != w {
					t.Errorf("Function %d: expected %+v, got %+v", i, w, got[i])
				}
			}
		})
	}
}
