package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/carverauto/netdiag/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    Mode
		wantErr bool
	}{
		{name: "defaults", cfg: Config{}, want: ModeAuto},
		{name: "tcp", cfg: Config{Mode: ModeTCP}, want: ModeTCP},
		{name: "bogus", cfg: Config{Mode: "carrier-pigeon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.cfg.Mode)
			assert.Equal(t, defaultAttempts, tt.cfg.Attempts)
			assert.Equal(t, defaultTimeout, tt.cfg.Options().Timeout)
			assert.NotEmpty(t, tt.cfg.TCPPorts)
		})
	}
}

func TestNew_TCPMode(t *testing.T) {
	cfg := Config{Mode: ModeTCP}
	require.NoError(t, cfg.Validate())

	_, isTCP := New(&cfg).(*TCPProber)
	assert.True(t, isTCP)
}

func TestTCPProber_Probe(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}

			_ = conn.Close()
		}
	}()

	port := ln.Addr().(*net.TCPAddr).Port

	t.Run("open port", func(t *testing.T) {
		sample := NewTCPProber(port).Probe(context.Background(), "127.0.0.1", time.Second)

		require.True(t, sample.Success, sample.Error)
		assert.GreaterOrEqual(t, sample.RTTMs, 0.0)
		assert.Empty(t, sample.ErrorKind)
	})

	t.Run("refused port still proves reachability", func(t *testing.T) {
		closed, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		closedPort := closed.Addr().(*net.TCPAddr).Port
		require.NoError(t, closed.Close())

		sample := NewTCPProber(closedPort).Probe(context.Background(), "127.0.0.1", time.Second)
		assert.True(t, sample.Success, sample.Error)
	})

	t.Run("empty target", func(t *testing.T) {
		sample := NewTCPProber(port).Probe(context.Background(), "", time.Second)

		assert.False(t, sample.Success)
		assert.InDelta(t, models.Unavailable, sample.RTTMs, 1e-9)
		assert.Equal(t, models.ErrorKindUnavailable, sample.ErrorKind)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sample := NewTCPProber(port).Probe(ctx, "127.0.0.1", time.Second)

		assert.False(t, sample.Success)
		assert.Equal(t, models.ErrorKindCancelled, sample.ErrorKind)
	})
}

func TestResolveIPv4(t *testing.T) {
	addr, err := resolveIPv4(context.Background(), "192.0.2.7")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.7", addr.String())

	_, err = resolveIPv4(context.Background(), "2001:db8::1")
	require.ErrorIs(t, err, errNoIPv4Address)

	_, err = resolveIPv4(context.Background(), "")
	require.ErrorIs(t, err, errEmptyTarget)

}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want models.ErrorKind
	}{
		{name: "nil", err: nil, want: models.ErrorKindNone},
		{name: "cancelled", err: context.Canceled, want: models.ErrorKindCancelled},
		{name: "deadline", err: context.DeadlineExceeded, want: models.ErrorKindTimeout},
		{name: "net timeout", err: &net.OpError{Op: "read", Err: timeoutErr{}}, want: models.ErrorKindTimeout},
		{name: "other", err: errEmptyTarget, want: models.ErrorKindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
