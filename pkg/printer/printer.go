// Package printer delivers rendered documents to a raw print queue: a USB
// device node, a JetDirect-style TCP socket or a spool directory.
package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Job is one document to print.
type Job struct {
	Name string
	Data []byte
}

// Status describes the configured printer.
type Status struct {
	Type      string `json:"type"`
	Target    string `json:"target,omitempty"`
	Connected bool   `json:"connected"`
}

// Printer sends document bytes to a printer unchanged.
type Printer interface {
	Print(ctx context.Context, job Job) error
	Status(ctx context.Context) Status
}

const (
	TypeUSB     = "usb"
	TypeNetwork = "network"
	TypeSpool   = "spool"
	TypeNone    = "none"
)

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a device file such as /dev/usb/lp0.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(job.Data); err != nil {
		return fmt.Errorf("printer: failed to write %s to %s: %w", job.Name, p.path, err)
	}
	return nil
}

func (p *usbPrinter) Status(context.Context) Status {
	_, err := os.Stat(p.path)
	return Status{Type: TypeUSB, Target: p.path, Connected: err == nil}
}

type networkPrinter struct {
	address string
	dialer  net.Dialer
}

// NewNetworkPrinter creates a printer reached over raw TCP, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{
		address: address,
		dialer:  net.Dialer{Timeout: 5 * time.Second},
	}
}

func (p *networkPrinter) Print(ctx context.Context, job Job) error {
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(30 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(job.Data); err != nil {
		return fmt.Errorf("printer: failed to send %s to %s: %w", job.Name, p.address, err)
	}
	return nil
}

func (p *networkPrinter) Status(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st := Status{Type: TypeNetwork, Target: p.address}
	conn, err := p.dialer.DialContext(ctx, "tcp", p.address)
	if err == nil {
		conn.Close()
		st.Connected = true
	}
	return st
}

type spoolPrinter struct {
	dir string
}

// NewSpoolPrinter creates a printer that drops each job as a file in dir,
// for a print daemon (or a person) to pick up.
func NewSpoolPrinter(dir string) Printer {
	return &spoolPrinter{dir: dir}
}

func (p *spoolPrinter) Print(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: failed to create spool dir %s: %w", p.dir, err)
	}
	name := filepath.Base(job.Name)
	if name == "." || name == string(filepath.Separator) {
		name = fmt.Sprintf("job_%d.pdf", time.Now().UnixNano())
	}
	if err := os.WriteFile(filepath.Join(p.dir, name), job.Data, 0o644); err != nil {
		return fmt.Errorf("printer: failed to spool %s: %w", name, err)
	}
	return nil
}

func (p *spoolPrinter) Status(context.Context) Status {
	info, err := os.Stat(p.dir)
	return Status{Type: TypeSpool, Target: p.dir, Connected: err == nil && info.IsDir()}
}

type nullPrinter struct{}

// NewNullPrinter creates a printer that accepts and discards every job.
func NewNullPrinter() Printer {
	return nullPrinter{}
}

func (nullPrinter) Print(context.Context, Job) error {
	return nil
}

func (nullPrinter) Status(context.Context) Status {
	return Status{Type: TypeNone}
}

// NewPrinterFromConfig creates the Printer for printerType. For "usb" target
// is the device path, for "network" a host:port and for "spool" a directory.
func NewPrinterFromConfig(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case TypeUSB:
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(usbPath), nil
	case TypeNetwork:
		if address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(address), nil
	case TypeSpool:
		if address == "" {
			return nil, fmt.Errorf("printer: spool directory is required for spool printer type")
		}
		return NewSpoolPrinter(address), nil
	case TypeNone, "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, spool, or none)", printerType)
	}
}
