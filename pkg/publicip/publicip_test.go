package publicip

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pion/stun/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netdiag/pkg/geo"
	"github.com/carverauto/netdiag/pkg/models"
)

func TestClassifyNAT(t *testing.T) {
	a := &net.UDPAddr{IP: net.ParseIP("203.0.113.7"), Port: 40000}
	b := &net.UDPAddr{IP: net.ParseIP("203.0.113.7"), Port: 40001}

	assert.Equal(t, models.NATUnknown, ClassifyNAT([]*net.UDPAddr{a}))
	assert.Equal(t, models.NATEndpointIndependent, ClassifyNAT([]*net.UDPAddr{a, a}))
	assert.Equal(t, models.NATAddressPortDependent, ClassifyNAT([]*net.UDPAddr{a, b}))
}

func TestHTTPResolverFallsBack(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>hello</html>"))
	}))
	defer garbage.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("198.51.100.23\n"))
	}))
	defer good.Close()

	r := NewHTTPResolver([]string{broken.URL, garbage.URL, good.URL}, good.Client())

	addr, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.23", addr.IP)
	assert.Equal(t, good.URL, addr.Source)
}

func TestHTTPResolverAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not an ip"))
	}))
	defer srv.Close()

	_, err := NewHTTPResolver([]string{srv.URL}, srv.Client()).Resolve(context.Background())
	require.ErrorIs(t, err, errAllFailed)
	require.ErrorIs(t, err, errInvalidAddress)

	_, err = NewHTTPResolver(nil, nil).Resolve(context.Background())
	require.ErrorIs(t, err, errNoServers)
}

func TestChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := NewMockResolver(ctrl)
	second := NewMockResolver(ctrl)

	first.EXPECT().Resolve(gomock.Any()).Return(models.PublicAddress{}, errors.New("udp blocked"))
	second.EXPECT().Resolve(gomock.Any()).Return(models.PublicAddress{IP: "192.0.2.1", Source: "echo"}, nil)

	addr, err := Chain{first, second}.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.1", addr.IP)
}

func TestDetectorEnriches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewMockResolver(ctrl)
	lookup := geo.NewMockLookup(ctrl)

	resolver.EXPECT().Resolve(gomock.Any()).Return(models.PublicAddress{IP: "192.0.2.1"}, nil).Times(2)
	lookup.EXPECT().Lookup(gomock.Any(), "192.0.2.1").Return(models.GeoInfo{Country: "Norway"}, nil)
	lookup.EXPECT().Lookup(gomock.Any(), "192.0.2.1").Return(models.GeoInfo{}, errors.New("rate limited"))

	d := NewDetector(resolver, lookup)

	addr, err := d.Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Norway", addr.Geo.Country)

	addr, err = d.Detect(context.Background())
	require.NoError(t, err)
	assert.True(t, addr.Geo.Empty())
}

// serveSTUN answers binding requests with the sender's address.
func serveSTUN(t *testing.T) string {
	t.Helper()

	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	go func() {
		buf := make([]byte, 1500)

		for {
			n, from, err := conn.ReadFrom(buf)
			if err != nil {
				return
			}

			req := &stun.Message{Raw: append([]byte(nil), buf[:n]...)}
			if req.Decode() != nil {
				continue
			}

			udp := from.(*net.UDPAddr)

			res, err := stun.Build(
				stun.NewTransactionIDSetter(req.TransactionID),
				stun.BindingSuccess,
				&stun.XORMappedAddress{IP: udp.IP, Port: udp.Port},
				stun.Fingerprint,
			)
			if err != nil {
				continue
			}

			_, _ = conn.WriteTo(res.Raw, from)
		}
	}()

	return conn.LocalAddr().String()
}

func TestSTUNResolver(t *testing.T) {
	server := serveSTUN(t)

	r := NewSTUNResolver([]string{"", server, server}, 2*time.Second)

	addr, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", addr.IP)
	assert.NotZero(t, addr.Port)
	assert.Equal(t, "stun", addr.Source)
	assert.Equal(t, models.NATEndpointIndependent, addr.NATType)
}

func TestSTUNResolverNoServers(t *testing.T) {
	_, err := NewSTUNResolver(nil, time.Second).Resolve(context.Background())
	require.ErrorIs(t, err, errNoServers)

	_, err = NewSTUNResolver([]string{" "}, time.Second).Resolve(context.Background())
	require.ErrorIs(t, err, errNoMapping)
	require.ErrorIs(t, err, errEmptyServer)
}

func TestSTUNResolverCancelled(t *testing.T) {
	// Nothing listens here, so the read only ends when the context does.
	conn, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)

	silent := conn.LocalAddr().String()
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = NewSTUNResolver([]string{silent}, 10*time.Second).Resolve(ctx)

	require.ErrorIs(t, err, errNoMapping)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}
