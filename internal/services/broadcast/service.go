// Package broadcast sends magic packets to broadcast targets over UDP.
package broadcast

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/fgeck/gowol-homelab/internal/metrics"
	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/rs/zerolog"
)

// Service defines the interface for sending magic packets.
type Service interface {
	Send(ctx context.Context, packet wol.MagicPacket, targets []models.BroadcastTarget) ([]models.TargetResult, error)
}

// Conn is the datagram socket used for one batch of sends.
type Conn interface {
	WriteTo(b []byte, addr net.Addr) (int, error)
	Close() error
}

// Dialer opens broadcast-capable sockets (mockable).
type Dialer interface {
	Open(ctx context.Context) (Conn, error)
}

// DefaultDialer opens an unbound UDP socket with SO_BROADCAST enabled.
type DefaultDialer struct{}

// Open creates the socket. The broadcast flag is set before it is returned.
func (d *DefaultDialer) Open(ctx context.Context) (Conn, error) {
	lc := net.ListenConfig{Control: enableBroadcast}
	conn, err := lc.ListenPacket(ctx, "udp4", ":0")
	if err != nil {
		return nil, fmt.Errorf("failed to open UDP socket: %w", err)
	}
	return conn, nil
}

// Impl implements the broadcast Service interface.
type Impl struct {
	dialer Dialer
	logger zerolog.Logger
}

// New creates a new broadcast service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		dialer: &DefaultDialer{},
		logger: logger,
	}
}

// NewWithDialer creates a new broadcast service with a custom dialer (for testing).
func NewWithDialer(logger zerolog.Logger, dialer Dialer) *Impl {
	return &Impl{
		dialer: dialer,
		logger: logger,
	}
}

// Send transmits packet once to every target using a single socket.
// Per-target failures are reported in the results; the returned error is
// only set when no target could be attempted at all.
func (s *Impl) Send(ctx context.Context, packet wol.MagicPacket, targets []models.BroadcastTarget) ([]models.TargetResult, error) {
	if len(targets) == 0 {
		return nil, wol.ErrNoTargets
	}

	conn, err := s.dialer.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("failed to close broadcast socket")
		}
	}()

	payload := packet.Bytes()
	mac := packet.Target().String()
	results := make([]models.TargetResult, 0, len(targets))

	for _, target := range targets {
		result := models.TargetResult{Target: target}

		if err := s.sendTo(conn, payload, target); err != nil {
			result.Error = err
			metrics.SendErrorsTotal.WithLabelValues(target.String()).Inc()
		} else {
			result.Sent = true
			metrics.PacketsSentTotal.WithLabelValues(target.String()).Inc()
			s.logger.Debug().
				Str("mac", mac).
				Str("target", target.String()).
				Msg("magic packet sent")
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *Impl) sendTo(conn Conn, payload []byte, target models.BroadcastTarget) error {
	addr, err := net.ResolveUDPAddr("udp4", target.String())
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", target, err)
	}

	n, err := conn.WriteTo(payload, addr)
	if err != nil {
		return fmt.Errorf("failed to send to %s: %w", target, err)
	}
	if n != len(payload) {
		return fmt.Errorf("failed to send to %s: %w", target, io.ErrShortWrite)
	}

	return nil
}
