package broadcast

import (
	"context"
	"errors"
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

type sentDatagram struct {
	addr    string
	payload []byte
}

type mockConn struct {
	writeFunc func(b []byte, addr net.Addr) (int, error)
	sent      []sentDatagram
	closed    bool
}

func (m *mockConn) WriteTo(b []byte, addr net.Addr) (int, error) {
	if m.writeFunc != nil {
		return m.writeFunc(b, addr)
	}
	m.sent = append(m.sent, sentDatagram{addr: addr.String(), payload: append([]byte(nil), b...)})
	return len(b), nil
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

type mockDialer struct {
	conn   *mockConn
	err    error
	opened int
}

func (m *mockDialer) Open(ctx context.Context) (Conn, error) {
	m.opened++
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func defaultTargets() []models.BroadcastTarget {
	return []models.BroadcastTarget{
		{Host: "192.168.1.255", Port: 9},
		{Host: "192.168.0.255", Port: 9},
	}
}

func TestSend_AllTargets(t *testing.T) {
	conn := &mockConn{}
	dialer := &mockDialer{conn: conn}
	svc := NewWithDialer(testLogger(), dialer)

	packet := wol.Build(wol.MustParseMAC("00:11:22:33:44:55"))

	results, err := svc.Send(context.Background(), packet, defaultTargets())

	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.True(t, r.Sent)
		assert.NoError(t, r.Error)
	}

	assert.Equal(t, 1, dialer.opened)
	assert.True(t, conn.closed)
	require.Len(t, conn.sent, 2)
	assert.Equal(t, "192.168.1.255:9", conn.sent[0].addr)
	assert.Equal(t, "192.168.0.255:9", conn.sent[1].addr)
	assert.Equal(t, packet.Bytes(), conn.sent[0].payload)
	assert.Len(t, conn.sent[1].payload, wol.MagicPacketSize)
}

func TestSend_NoTargets(t *testing.T) {
	dialer := &mockDialer{conn: &mockConn{}}
	svc := NewWithDialer(testLogger(), dialer)

	results, err := svc.Send(context.Background(), wol.Build(wol.MAC{}), nil)

	assert.ErrorIs(t, err, wol.ErrNoTargets)
	assert.Nil(t, results)
	assert.Equal(t, 0, dialer.opened)
}

func TestSend_OpenFailed(t *testing.T) {
	dialer := &mockDialer{err: errors.New("permission denied")}
	svc := NewWithDialer(testLogger(), dialer)

	results, err := svc.Send(context.Background(), wol.Build(wol.MAC{}), defaultTargets())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Nil(t, results)
}

func TestSend_PartialFailure(t *testing.T) {
	conn := &mockConn{}
	conn.writeFunc = func(b []byte, addr net.Addr) (int, error) {
		if addr.String() == "192.168.1.255:9" {
			return 0, errors.New("network is unreachable")
		}
		conn.sent = append(conn.sent, sentDatagram{addr: addr.String(), payload: b})
		return len(b), nil
	}
	svc := NewWithDialer(testLogger(), &mockDialer{conn: conn})

	results, err := svc.Send(context.Background(), wol.Build(wol.MAC{1, 2, 3, 4, 5, 6}), defaultTargets())

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.False(t, results[0].Sent)
	require.Error(t, results[0].Error)
	assert.Contains(t, results[0].Error.Error(), "network is unreachable")
	assert.Contains(t, results[0].Error.Error(), "192.168.1.255:9")

	assert.True(t, results[1].Sent)
	assert.Len(t, conn.sent, 1)
	assert.True(t, conn.closed, "socket must be closed after failures too")
}

func TestSend_ShortWrite(t *testing.T) {
	conn := &mockConn{
		writeFunc: func(b []byte, addr net.Addr) (int, error) {
			return len(b) - 1, nil
		},
	}
	svc := NewWithDialer(testLogger(), &mockDialer{conn: conn})

	results, err := svc.Send(context.Background(), wol.Build(wol.MAC{}), defaultTargets()[:1])

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Sent)
	assert.ErrorIs(t, results[0].Error, io.ErrShortWrite)
}

func TestSend_Loopback(t *testing.T) {
	receiver, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = receiver.Close() }()

	port := receiver.LocalAddr().(*net.UDPAddr).Port
	svc := New(testLogger())
	packet := wol.Build(wol.MustParseMAC("74:D0:2B:C5:9C:F5"))

	results, err := svc.Send(context.Background(), packet, []models.BroadcastTarget{{Host: "127.0.0.1", Port: port}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.True(t, results[0].Sent, "send failed: %v", results[0].Error)

	require.NoError(t, receiver.SetReadDeadline(time.Now().Add(2*time.Second)))
	buf := make([]byte, 512)
	n, _, err := receiver.ReadFrom(buf)
	require.NoError(t, err)
	assert.Equal(t, packet.Bytes(), buf[:n])
}
