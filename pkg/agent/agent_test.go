package agent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netdiag/pkg/config"
	"github.com/carverauto/netdiag/pkg/history"
	"github.com/carverauto/netdiag/pkg/metrics"
	"github.com/carverauto/netdiag/pkg/models"
)

func testConfig() Config {
	return Config{
		Interval:         config.Duration(10 * time.Millisecond),
		Retention:        5,
		HistoryRetention: config.Duration(time.Hour),
	}
}

func TestRunOncePublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	evaluator := NewMockEvaluator(ctrl)
	recorder := history.NewMockRecorder(ctrl)

	evaluator.EXPECT().Evaluate(gomock.Any()).Return(models.HealthReport{Score: 70, Grade: "C"})
	recorder.EXPECT().SaveHealth(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *models.HealthReport) error {
			assert.Equal(t, 70, r.Score)
			return nil
		})

	var seen models.HealthReport

	a := New(testConfig(), evaluator, WithRecorder(recorder), WithExporter(metrics.NewExporter()))
	a.OnReport(func(r models.HealthReport) { seen = r })

	report := a.RunOnce(context.Background())

	assert.Equal(t, 70, report.Score)
	assert.Equal(t, "C", seen.Grade)
	require.NotNil(t, a.Latest())
	assert.Equal(t, 70, a.Latest().Score)
	assert.False(t, a.LastRun().IsZero())
}

func TestRunOnceSaveFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	evaluator := NewMockEvaluator(ctrl)
	recorder := history.NewMockRecorder(ctrl)

	evaluator.EXPECT().Evaluate(gomock.Any()).Return(models.HealthReport{Score: 100, Grade: "A"})
	recorder.EXPECT().SaveHealth(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	a := New(testConfig(), evaluator, WithRecorder(recorder))

	assert.Equal(t, 100, a.RunOnce(context.Background()).Score)
	assert.Equal(t, 100, a.Latest().Score)
}

func TestStartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var runs atomic.Int32

	evaluator := NewMockEvaluator(ctrl)
	evaluator.EXPECT().Evaluate(gomock.Any()).DoAndReturn(func(context.Context) models.HealthReport {
		return models.HealthReport{Score: int(runs.Add(1))}
	}).MinTimes(2)

	a := New(testConfig(), evaluator)

	errCh := make(chan error, 1)

	go func() { errCh <- a.Start(context.Background()) }()

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, a.Stop(context.Background()))
	require.NoError(t, <-errCh)
	require.NoError(t, a.Stop(context.Background()))

	assert.ErrorIs(t, a.Start(context.Background()), errAlreadyStarted)
}

func TestStartHonorsContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	evaluator := NewMockEvaluator(ctrl)
	evaluator.EXPECT().Evaluate(gomock.Any()).Return(models.HealthReport{}).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(testConfig(), evaluator).Start(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("buffer", func(t *testing.T) {
		evaluator := NewMockEvaluator(ctrl)
		evaluator.EXPECT().Evaluate(gomock.Any()).Return(models.HealthReport{Score: 1}).Times(3)

		a := New(testConfig(), evaluator)
		for range 3 {
			a.RunOnce(context.Background())
		}

		reports, err := a.History(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, reports, 2)
	})

	t.Run("recorder", func(t *testing.T) {
		recorder := history.NewMockRecorder(ctrl)
		recorder.EXPECT().RecentHealth(gomock.Any(), 10).Return([]models.HealthReport{{Score: 9}}, nil)

		a := New(testConfig(), NewMockEvaluator(ctrl), WithRecorder(recorder))

		reports, err := a.History(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, 9, reports[0].Score)
	})
}

func TestStopCleansAndClosesRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := history.NewMockRecorder(ctrl)
	gomock.InOrder(
		recorder.EXPECT().Clean(gomock.Any(), time.Hour).Return(nil),
		recorder.EXPECT().Close().Return(nil),
	)

	a := New(testConfig(), NewMockEvaluator(ctrl), WithRecorder(recorder))
	require.NoError(t, a.Stop(context.Background()))
}

func TestRecordThroughput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	recorder := history.NewMockRecorder(ctrl)
	recorder.EXPECT().SaveThroughput(gomock.Any(), gomock.Any()).Return(nil)

	a := New(testConfig(), NewMockEvaluator(ctrl), WithRecorder(recorder), WithExporter(metrics.NewExporter()))
	a.RecordThroughput(context.Background(), &models.ThroughputResult{Direction: models.DirectionUpload, Outcome: models.OutcomeCompleted, RateMbps: 12})
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Minute, time.Duration(cfg.Interval))
	assert.Equal(t, metrics.DefaultRetention, cfg.Retention)
	assert.Equal(t, ":8080", cfg.ListenAddr)

	bad := Config{Interval: config.Duration(time.Millisecond)}
	require.ErrorIs(t, bad.Validate(), errInvalidConfig)
}
