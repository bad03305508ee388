package wol

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/fgeck/gowol-homelab/internal/models"
)

// ParseTarget parses "host" or "host:port" into a broadcast target.
// IPv6 literals with a port must be bracketed, e.g. "[ff02::1]:9".
func ParseTarget(s string, defaultPort int) (models.BroadcastTarget, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.BroadcastTarget{}, fmt.Errorf("%w: empty address", ErrInvalidTarget)
	}

	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		// No port given; accept bare hosts and unbracketed IPv6 literals.
		if strings.Count(s, ":") == 1 {
			return models.BroadcastTarget{}, fmt.Errorf("%w: %q: %v", ErrInvalidTarget, s, err)
		}
		host = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
		return validateTarget(s, host, defaultPort)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return models.BroadcastTarget{}, fmt.Errorf("%w: %q: port %q is not a number", ErrInvalidTarget, s, portStr)
	}
	return validateTarget(s, host, port)
}

// ParseTargets parses every entry of list, stopping at the first error.
func ParseTargets(list []string, defaultPort int) ([]models.BroadcastTarget, error) {
	targets := make([]models.BroadcastTarget, 0, len(list))
	for _, s := range list {
		t, err := ParseTarget(s, defaultPort)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func validateTarget(raw, host string, port int) (models.BroadcastTarget, error) {
	if host == "" {
		return models.BroadcastTarget{}, fmt.Errorf("%w: %q: missing host", ErrInvalidTarget, raw)
	}
	if err := ValidatePort(port); err != nil {
		return models.BroadcastTarget{}, fmt.Errorf("%w: %q: %v", ErrInvalidTarget, raw, err)
	}
	return models.BroadcastTarget{Host: host, Port: port}, nil
}

// ValidatePort checks that port is a usable UDP destination port.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", port)
	}
	return nil
}
