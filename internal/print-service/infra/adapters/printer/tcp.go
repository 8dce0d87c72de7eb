// Package printer implements the raw-TCP transport to ESC/POS-class
// network printers. These devices accept print jobs on port 9100 with no
// framing and no acknowledgment: connect, write the bytes, close.
package printer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Port is the raw printing port ("JetDirect") every supported printer
// listens on.
const Port = "9100"

// DefaultTimeout bounds both the connect and the write of a single job.
// A powered-off printer costs at most this much request latency.
const DefaultTimeout = 3 * time.Second

// TCPSender sends print jobs over raw TCP. Each Send opens a fresh
// connection; printers hold no useful session state and a stale pooled
// connection to a rebooted printer would silently drop jobs.
type TCPSender struct {
	timeout time.Duration
	port    string
}

func NewTCPSender(timeout time.Duration) *TCPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TCPSender{timeout: timeout, port: Port}
}

// Send writes payload to ip:9100. Every lifecycle stage is logged with the
// job label so operators can spot a dead printer from the logs alone.
func (s *TCPSender) Send(ctx context.Context, ip string, payload []byte, label string) error {
	addr := net.JoinHostPort(ip, s.port)
	slog.InfoContext(ctx, "printer connecting", "label", label, "addr", addr)

	d := net.Dialer{Timeout: s.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		slog.ErrorContext(ctx, "printer connect failed", "label", label, "addr", addr, "error", err)
		return fmt.Errorf("printer %s: connect %s: %w", label, addr, err)
	}
	defer conn.Close()

	slog.InfoContext(ctx, "printer connected, sending", "label", label, "bytes", len(payload))

	_ = conn.SetDeadline(time.Now().Add(s.timeout))
	if _, err := conn.Write(payload); err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			slog.ErrorContext(ctx, "printer send timed out", "label", label, "addr", addr)
			return fmt.Errorf("printer %s: write %s: timeout: %w", label, addr, err)
		}
		slog.ErrorContext(ctx, "printer send failed", "label", label, "addr", addr, "error", err)
		return fmt.Errorf("printer %s: write %s: %w", label, addr, err)
	}

	// Half-close so the printer sees EOF and starts the job immediately.
	if tc, ok := conn.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
	}

	slog.InfoContext(ctx, "printer send complete", "label", label, "addr", addr, "bytes", len(payload))
	return nil
}
