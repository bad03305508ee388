// Package wake orchestrates Wake-on-LAN requests.
package wake

import (
	"context"

	"github.com/fgeck/gowol-homelab/internal/metrics"
	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/services/broadcast"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/rs/zerolog"
)

// Service defines the interface for Wake-on-LAN operations.
type Service interface {
	Wake(ctx context.Context, inputs []string) ([]models.WakeOutcome, error)
}

// Impl implements the wake Service interface.
type Impl struct {
	broadcaster broadcast.Service
	targets     []models.BroadcastTarget
	logger      zerolog.Logger
}

// New creates a new wake service sending to cfg.Targets.
func New(logger zerolog.Logger, cfg models.WakeConfig) *Impl {
	return NewWithBroadcaster(logger, cfg, broadcast.New(logger))
}

// NewWithBroadcaster creates a new wake service with a custom broadcaster (for testing).
func NewWithBroadcaster(logger zerolog.Logger, cfg models.WakeConfig, broadcaster broadcast.Service) *Impl {
	targets := make([]models.BroadcastTarget, len(cfg.Targets))
	copy(targets, cfg.Targets)

	return &Impl{
		broadcaster: broadcaster,
		targets:     targets,
		logger:      logger,
	}
}

// Targets returns a copy of the configured broadcast targets.
func (s *Impl) Targets() []models.BroadcastTarget {
	targets := make([]models.BroadcastTarget, len(s.targets))
	copy(targets, s.targets)
	return targets
}

// Wake sends a magic packet for every valid input, in order. Invalid inputs
// are rejected individually and never abort the batch. The returned error is
// only set when nothing can be sent at all.
func (s *Impl) Wake(ctx context.Context, inputs []string) ([]models.WakeOutcome, error) {
	if len(s.targets) == 0 {
		return nil, wol.ErrNoTargets
	}

	outcomes := make([]models.WakeOutcome, 0, len(inputs))
	for _, input := range inputs {
		outcomes = append(outcomes, s.wakeOne(ctx, input))
	}

	return outcomes, nil
}

func (s *Impl) wakeOne(ctx context.Context, input string) models.WakeOutcome {
	outcome := models.WakeOutcome{Input: input}

	mac, err := wol.ParseMAC(input)
	if err != nil {
		outcome.Reason = err
		metrics.RequestsTotal.WithLabelValues("rejected").Inc()
		s.logger.Warn().Err(err).Str("input", input).Msg("rejected wake request")
		return outcome
	}

	outcome.MAC = mac.String()

	s.logger.Info().
		Str("mac", outcome.MAC).
		Int("targets", len(s.targets)).
		Msg("sending magic packet")

	results, err := s.broadcaster.Send(ctx, wol.Build(mac), s.targets)
	if err != nil {
		s.logger.Warn().Err(err).Str("mac", outcome.MAC).Msg("magic packet could not be sent")
		results = failAll(s.targets, err)
	}

	for _, r := range results {
		if !r.Sent {
			s.logger.Warn().
				Err(r.Error).
				Str("mac", outcome.MAC).
				Str("target", r.Target.String()).
				Msg("transmission failed")
		}
	}

	// Delivery is unacknowledged, so a dispatched request counts as woken
	// whatever happened to the individual datagrams.
	outcome.Targets = results
	outcome.Woken = true
	metrics.RequestsTotal.WithLabelValues("woken").Inc()

	return outcome
}

func failAll(targets []models.BroadcastTarget, err error) []models.TargetResult {
	results := make([]models.TargetResult, len(targets))
	for i, t := range targets {
		results[i] = models.TargetResult{Target: t, Error: err}
	}
	return results
}
