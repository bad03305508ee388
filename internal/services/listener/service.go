// Package listener receives and decodes magic packets, for checking that
// wake requests reach a network segment.
package listener

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/fgeck/gowol-homelab/internal/metrics"
	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/rs/zerolog"
)

// maxDatagramSize leaves room for a SecureOn password and stray larger datagrams.
const maxDatagramSize = 1500

// Handler is called for every valid magic packet.
type Handler func(models.ReceivedPacket)

// Service defines the interface for the magic packet listener.
type Service interface {
	ListenAndServe(ctx context.Context, addr string, handle Handler) error
	Serve(ctx context.Context, conn net.PacketConn, handle Handler) error
}

// Impl implements the listener Service interface.
type Impl struct {
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a new listener service.
func New(logger zerolog.Logger) *Impl {
	return &Impl{
		logger: logger,
		now:    time.Now,
	}
}

// ListenAndServe opens a UDP socket on addr and serves it until ctx is cancelled.
func (s *Impl) ListenAndServe(ctx context.Context, addr string, handle Handler) error {
	var lc net.ListenConfig
	conn, err := lc.ListenPacket(ctx, "udp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return s.Serve(ctx, conn, handle)
}

// Serve reads datagrams from conn until ctx is cancelled. conn is closed on return.
func (s *Impl) Serve(ctx context.Context, conn net.PacketConn, handle Handler) error {
	s.logger.Info().Str("addr", conn.LocalAddr().String()).Msg("listening for magic packets")

	// Unblock ReadFrom on cancellation.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer func() { _ = conn.Close() }()

	buf := make([]byte, maxDatagramSize)
	for {
		n, src, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info().Msg("listener stopped")
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to read datagram: %w", err)
		}

		mac, password, err := wol.Decode(buf[:n])
		if err != nil {
			metrics.PacketsReceivedTotal.WithLabelValues("invalid").Inc()
			s.logger.Debug().Err(err).Str("source", src.String()).Int("size", n).Msg("ignoring datagram")
			continue
		}

		metrics.PacketsReceivedTotal.WithLabelValues("valid").Inc()
		pkt := models.ReceivedPacket{
			MAC:        mac.String(),
			Source:     src.String(),
			Password:   password,
			ReceivedAt: s.now(),
		}

		s.logger.Info().
			Str("mac", pkt.MAC).
			Str("source", pkt.Source).
			Bool("password", len(password) > 0).
			Msg("magic packet received")

		if handle != nil {
			handle(pkt)
		}
	}
}
