package speedtest

import (
	"time"

	"github.com/carverauto/netdiag/pkg/models"
)

const progressBuffer = 64

// Run is an in-flight throughput measurement. Progress samples arrive on
// Progress until the run finishes, then the channel is closed and Wait
// returns the final result.
type Run struct {
	progress chan models.ThroughputSample
	done     chan struct{}
	result   models.ThroughputResult
	err      error

	// Only the transfer goroutine touches these.
	started     time.Time
	lastElapsed float64
}

func newRun() *Run {
	return &Run{
		progress: make(chan models.ThroughputSample, progressBuffer),
		done:     make(chan struct{}),
	}
}

// Progress returns the stream of cumulative samples. Samples are dropped
// rather than stalling the transfer when the consumer falls behind.
func (r *Run) Progress() <-chan models.ThroughputSample {
	return r.progress
}

// Wait blocks until the run finishes.
func (r *Run) Wait() (models.ThroughputResult, error) {
	<-r.done

	return r.result, r.err
}

// Done is closed when the run finishes.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// offset returns how far into the run an attempt starting at t begins. The
// first attempt defines the start of the run.
func (r *Run) offset(t time.Time) time.Duration {
	if r.started.IsZero() {
		r.started = t
	}

	return max(t.Sub(r.started), 0)
}

func (r *Run) emit(s models.ThroughputSample) {
	if s.ElapsedSeconds < r.lastElapsed {
		return
	}

	r.lastElapsed = s.ElapsedSeconds

	select {
	case r.progress <- s:
	default:
	}
}

func (r *Run) finish(result models.ThroughputResult, err error) {
	r.result = result
	r.err = err

	close(r.progress)
	close(r.done)
}

// Collect drains a run and returns every delivered sample with the result.
func Collect(r *Run) ([]models.ThroughputSample, models.ThroughputResult, error) {
	var samples []models.ThroughputSample

	for s := range r.Progress() {
		samples = append(samples, s)
	}

	result, err := r.Wait()

	return samples, result, err
}
