package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Printer sends raw ESC/POS data to a receipt printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer is reachable.
	IsConnected() bool
}

// Config selects and locates a printer.
type Config struct {
	Type    string // usb, network, file or none
	USBPath string // device path for usb, spool path for file
	Address string // host:port for network
	Timeout time.Duration
}

// New creates the Printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address, cfg.Timeout), nil
	case "file":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: a path is required for file printer type")
		}
		return NewFilePrinter(cfg.USBPath), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, file or none)", cfg.Type)
	}
}

// --- USB printer (writes to a device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network printer (raw TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP for every job.
// A zero timeout means five seconds.
func NewNetworkPrinter(address string, timeout time.Duration) Printer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &networkPrinter{address: address, timeout: timeout}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(2 * p.timeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout/2)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Writer printer (spools jobs to any io.Writer) ---

// WriterPrinter appends each job to an io.Writer. It backs the file printer
// and lets tests capture receipts.
type WriterPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	jobs int
}

// NewWriterPrinter creates a printer writing to w.
func NewWriterPrinter(w io.Writer) *WriterPrinter {
	return &WriterPrinter{w: w}
}

// Print writes one job.
func (p *WriterPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(data); err != nil {
		return fmt.Errorf("printer: spool write failed: %w", err)
	}
	p.jobs++
	return nil
}

// Close closes the writer when it is an io.Closer.
func (p *WriterPrinter) Close() error {
	if c, ok := p.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// IsConnected always reports true.
func (p *WriterPrinter) IsConnected() bool { return true }

// Jobs returns how many jobs were written.
func (p *WriterPrinter) Jobs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.jobs
}

type filePrinter struct {
	path string
}

// NewFilePrinter creates a printer that appends jobs to a spool file.
func NewFilePrinter(path string) Printer {
	return &filePrinter{path: path}
}

func (p *filePrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("printer: failed to open spool file %s: %w", p.path, err)
	}
	wp := NewWriterPrinter(f)
	defer wp.Close()
	return wp.Print(data)
}

func (p *filePrinter) Close() error { return nil }

func (p *filePrinter) IsConnected() bool { return true }

// --- Null printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }

func (p *nullPrinter) Close() error { return nil }

func (p *nullPrinter) IsConnected() bool { return false }
