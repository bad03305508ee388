package models

import (
	"net"
	"strconv"
	"time"
)

// WakeConfig holds Wake-on-LAN configuration.
type WakeConfig struct {
	Port    int               // default UDP port for targets without one
	Targets []BroadcastTarget // broadcast destinations, tried in order
}

// BroadcastTarget is a destination for magic packets.
type BroadcastTarget struct {
	Host string // IP address or hostname
	Port int
}

// String returns the target in host:port form.
func (t BroadcastTarget) String() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// TargetResult holds the result of sending one packet to one target.
type TargetResult struct {
	Target BroadcastTarget
	Sent   bool  // the datagram was handed to the local transport
	Error  error // transmission failure, nil when Sent
}

// WakeOutcome holds the result of one wake request.
type WakeOutcome struct {
	Input   string
	MAC     string // canonical form, empty when rejected
	Woken   bool   // packet dispatched; says nothing about the remote machine
	Reason  error  // parse error when rejected
	Targets []TargetResult
}

// Rejected reports whether the input failed address validation.
func (o WakeOutcome) Rejected() bool {
	return o.Reason != nil
}

// FailedTargets returns the targets whose transmission failed.
func (o WakeOutcome) FailedTargets() []TargetResult {
	var failed []TargetResult
	for _, t := range o.Targets {
		if !t.Sent {
			failed = append(failed, t)
		}
	}
	return failed
}

// ReceivedPacket is a magic packet observed on the network.
type ReceivedPacket struct {
	MAC        string
	Source     string
	Password   []byte // SecureOn password, if present
	ReceivedAt time.Time
}
