package traffic

import (
	"context"
	"errors"
	"testing"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounters struct {
	snapshots [][]psnet.IOCountersStat
	err       error
	calls     int
}

func (f *fakeCounters) IOCounters(context.Context) ([]psnet.IOCountersStat, error) {
	if f.err != nil {
		return nil, f.err
	}

	s := f.snapshots[min(f.calls, len(f.snapshots)-1)]
	f.calls++

	return s, nil
}

func stat(name string, rx, tx uint64) psnet.IOCountersStat {
	return psnet.IOCountersStat{Name: name, BytesRecv: rx, BytesSent: tx}
}

func TestRates(t *testing.T) {
	prev := []psnet.IOCountersStat{stat("eth0", 1_000, 500), stat("lo", 0, 0), stat("wlan0", 5_000, 5_000)}
	cur := []psnet.IOCountersStat{
		stat("wlan0", 4_000, 130_000),
		stat("eth0", 1_001_000, 250_500),
		stat("lo", 9_000_000, 9_000_000),
		stat("docker0", 10, 10),
	}

	at := time.Unix(1700000000, 0)
	r := Rates(prev, cur, time.Second, at)

	require.Len(t, r.Interfaces, 2)
	assert.Equal(t, "eth0", r.Interfaces[0].Name)
	assert.InDelta(t, 8.0, r.Interfaces[0].RxMbps, 1e-9)
	assert.InDelta(t, 2.0, r.Interfaces[0].TxMbps, 1e-9)
	assert.Equal(t, at, r.Interfaces[0].SampledAt)

	// wlan0 rx went backwards, as after a counter reset.
	assert.Zero(t, r.Interfaces[1].RxMbps)
	assert.InDelta(t, 1.0, r.Interfaces[1].TxMbps, 1e-9)

	assert.InDelta(t, 8.0, r.TotalRxMbps, 1e-9)
	assert.InDelta(t, 3.0, r.TotalTxMbps, 1e-9)
	assert.InDelta(t, 1.0, r.IntervalSeconds, 1e-9)
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, IsLoopback("lo"))
	assert.True(t, IsLoopback("lo0"))
	assert.True(t, IsLoopback("Loopback Pseudo-Interface 1"))
	assert.False(t, IsLoopback("eth0"))
}

func TestSampler(t *testing.T) {
	counters := &fakeCounters{snapshots: [][]psnet.IOCountersStat{
		{stat("eth0", 0, 0)},
		{stat("eth0", 125_000, 0)},
	}}

	s := NewSampler(counters, 10*time.Millisecond)

	clock := time.Unix(0, 0)
	s.now = func() time.Time {
		clock = clock.Add(500 * time.Millisecond)
		return clock
	}

	r, err := s.Sample(context.Background())
	require.NoError(t, err)
	require.Len(t, r.Interfaces, 1)
	assert.InDelta(t, 2.0, r.Interfaces[0].RxMbps, 1e-9)
	assert.Equal(t, 2, counters.calls)
}

func TestSamplerErrors(t *testing.T) {
	_, err := NewSampler(&fakeCounters{err: errors.New("no /proc")}, time.Millisecond).Sample(context.Background())
	require.ErrorIs(t, err, errCounters)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counters := &fakeCounters{snapshots: [][]psnet.IOCountersStat{{stat("eth0", 0, 0)}}}
	_, err = NewSampler(counters, time.Hour).Sample(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
