package listener

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/fgeck/gowol-homelab/internal/models"
	"github.com/fgeck/gowol-homelab/internal/wol"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func startListener(t *testing.T) (context.CancelFunc, net.Addr, <-chan models.ReceivedPacket, <-chan error) {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	received := make(chan models.ReceivedPacket, 8)
	errCh := make(chan error, 1)

	svc := New(testLogger())
	go func() {
		errCh <- svc.Serve(ctx, conn, func(p models.ReceivedPacket) { received <- p })
	}()

	return cancel, conn.LocalAddr(), received, errCh
}

func send(t *testing.T, addr net.Addr, payload []byte) {
	t.Helper()

	conn, err := net.Dial("udp4", addr.String())
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	_, err = conn.Write(payload)
	require.NoError(t, err)
}

func TestServe_ValidPacket(t *testing.T) {
	cancel, addr, received, errCh := startListener(t)
	defer cancel()

	send(t, addr, wol.Build(wol.MustParseMAC("52:54:00:12:34:56")).Bytes())

	select {
	case p := <-received:
		assert.Equal(t, "52:54:00:12:34:56", p.MAC)
		assert.NotEmpty(t, p.Source)
		assert.Nil(t, p.Password)
		assert.False(t, p.ReceivedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for packet")
	}

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
}

func TestServe_IgnoresInvalidDatagrams(t *testing.T) {
	cancel, addr, received, _ := startListener(t)
	defer cancel()

	send(t, addr, []byte("hello"))
	send(t, addr, make([]byte, wol.MagicPacketSize))
	send(t, addr, wol.Build(wol.MustParseMAC("F4:6D:04:65:4E:F7")).Bytes())

	select {
	case p := <-received:
		assert.Equal(t, "f4:6d:04:65:4e:f7", p.MAC)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for packet")
	}
	assert.Empty(t, received)
}

func TestServe_PasswordPacket(t *testing.T) {
	cancel, addr, received, _ := startListener(t)
	defer cancel()

	payload := append(wol.Build(wol.MustParseMAC("00:11:22:33:44:55")).Bytes(), 1, 2, 3, 4, 5, 6)
	send(t, addr, payload)

	select {
	case p := <-received:
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, p.Password)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for packet")
	}
}

func TestListenAndServe_InvalidAddr(t *testing.T) {
	svc := New(testLogger())

	err := svc.ListenAndServe(context.Background(), "not-an-address", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
