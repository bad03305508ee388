package wol

import (
	"errors"
	"testing"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.BroadcastTarget
		wantErr bool
	}{
		{name: "bare ipv4", input: "192.168.1.255", want: models.BroadcastTarget{Host: "192.168.1.255", Port: 9}},
		{name: "ipv4 with port", input: "192.168.0.255:7", want: models.BroadcastTarget{Host: "192.168.0.255", Port: 7}},
		{name: "hostname", input: "lan-broadcast.home", want: models.BroadcastTarget{Host: "lan-broadcast.home", Port: 9}},
		{name: "surrounding spaces", input: "  255.255.255.255 ", want: models.BroadcastTarget{Host: "255.255.255.255", Port: 9}},
		{name: "bare ipv6", input: "ff02::1", want: models.BroadcastTarget{Host: "ff02::1", Port: 9}},
		{name: "bracketed ipv6 with port", input: "[ff02::1]:4000", want: models.BroadcastTarget{Host: "ff02::1", Port: 4000}},
		{name: "empty", input: "", wantErr: true},
		{name: "empty port", input: "192.168.1.255:", wantErr: true},
		{name: "non numeric port", input: "192.168.1.255:wol", wantErr: true},
		{name: "port zero", input: "192.168.1.255:0", wantErr: true},
		{name: "port too large", input: "192.168.1.255:70000", wantErr: true},
		{name: "missing host", input: ":9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.input, DefaultPort)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTarget))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTargets(t *testing.T) {
	targets, err := ParseTargets([]string{"192.168.1.255", "192.168.0.255:7"}, 9)
	require.NoError(t, err)
	assert.Equal(t, []models.BroadcastTarget{
		{Host: "192.168.1.255", Port: 9},
		{Host: "192.168.0.255", Port: 7},
	}, targets)
	assert.Equal(t, "192.168.0.255:7", targets[1].String())

	_, err = ParseTargets([]string{"192.168.1.255", "x:y"}, 9)
	assert.Error(t, err)
}

func TestParseTarget_BadDefaultPort(t *testing.T) {
	_, err := ParseTarget("192.168.1.255", 0)
	assert.Error(t, err)
}
