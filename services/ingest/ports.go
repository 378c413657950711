package ingest

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// usbSerialVendors maps USB vendor IDs of common USB-to-UART bridges found on
// ESP32 boards to a readable vendor name.
var usbSerialVendors = map[string]string{
	"10C4": "Silicon Labs CP210x",
	"0403": "FTDI",
	"067B": "Prolific",
	"1A86": "WCH CH340",
}

// PortInfo describes one serial port seen on the host.
type PortInfo struct {
	Name    string
	USB     bool
	VID     string
	PID     string
	Product string
	Vendor  string // empty unless the VID is a known bridge
}

// ListPorts enumerates the host's serial ports.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("enumerate serial ports: %w", err)
	}
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		vid := strings.ToUpper(d.VID)
		ports = append(ports, PortInfo{
			Name:    d.Name,
			USB:     d.IsUSB,
			VID:     vid,
			PID:     strings.ToUpper(d.PID),
			Product: d.Product,
			Vendor:  usbSerialVendors[vid],
		})
	}
	return ports, nil
}

// CandidatePorts keeps the USB ports backed by a known bridge chip.
func CandidatePorts(ports []PortInfo) []PortInfo {
	var out []PortInfo
	for _, p := range ports {
		if p.USB && p.Vendor != "" {
			out = append(out, p)
		}
	}
	return out
}

// DiscoverPort returns the only compatible port on the host.
func DiscoverPort() (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	return choosePort(CandidatePorts(ports))
}

func choosePort(candidates []PortInfo) (string, error) {
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w; specify one with --port", ErrNoPort)
	case 1:
		return candidates[0].Name, nil
	default:
		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = c.Name
		}
		return "", fmt.Errorf("%w: %s; specify one with --port", ErrAmbiguousPort, strings.Join(names, ", "))
	}
}

// Description summarises the port for listings.
func (p PortInfo) Description() string {
	switch {
	case !p.USB:
		return "not USB"
	case p.Vendor != "":
		return fmt.Sprintf("%s (%s:%s) %s", p.Vendor, p.VID, p.PID, p.Product)
	default:
		return fmt.Sprintf("USB %s:%s %s", p.VID, p.PID, p.Product)
	}
}
