package app

import (
	"context"
	"errors"
	"testing"
	"time"

	logAdapter "github.com/farmsight/thermalmap/internal/adapters/log"
	"github.com/farmsight/thermalmap/internal/domain"
)

type fakeSource struct {
	frame   domain.RawFrame
	calls   int
	panicOn int // 1-based call number, 0 disables
}

func (s *fakeSource) NextFrame() domain.RawFrame {
	s.calls++
	if s.panicOn != 0 && s.calls == s.panicOn {
		panic("transport wedged")
	}
	return s.frame
}

func (s *fakeSource) Close() error { return nil }

type fakeUpsampler struct {
	err   error
	calls int
}

func (u *fakeUpsampler) Upsample(frame domain.RawFrame) (domain.Surface, error) {
	u.calls++
	if u.err != nil {
		return domain.Surface{}, u.err
	}
	var s domain.Surface
	s.Values[0][0] = frame.Values[0][0]
	return s, nil
}

type recordingPresenter struct {
	results []domain.TickResult
	err     error
	onCall  func(n int)
}

func (p *recordingPresenter) Render(ctx context.Context, result domain.TickResult) error {
	p.results = append(p.results, result)
	if p.onCall != nil {
		p.onCall(len(p.results))
	}
	return p.err
}

func newTestScheduler(cfg SchedulerConfig, source *fakeSource, up *fakeUpsampler, pres *recordingPresenter) *Scheduler {
	return NewScheduler(cfg, source, up, pres, logAdapter.NewNoopLogger())
}

func TestRunCompletesBudget(t *testing.T) {
	source := &fakeSource{}
	source.frame.Values[0][0] = 19.5
	up := &fakeUpsampler{}
	pres := &recordingPresenter{}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 5}, source, up, pres)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pres.results) != 5 {
		t.Fatalf("presenter updates = %d, want 5", len(pres.results))
	}
	if pres.results[0].Interpolated.Values[0][0] != 19.5 {
		t.Fatal("interpolated surface not forwarded")
	}
	if pres.results[0].Degraded {
		t.Fatal("healthy tick marked degraded")
	}
}

func TestRunContainsPresenterError(t *testing.T) {
	source := &fakeSource{}
	pres := &recordingPresenter{err: errors.New("broker down")}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 4}, source, &fakeUpsampler{}, pres)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v, want nil: a failing presenter must not stop the run", err)
	}
	if source.calls != 4 {
		t.Fatalf("acquisitions = %d, want 4", source.calls)
	}
}

func TestRunContainsInterpolationFailure(t *testing.T) {
	source := &fakeSource{}
	source.frame.Values[2][2] = 30
	up := &fakeUpsampler{err: domain.ErrInterpolation}
	pres := &recordingPresenter{}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 3}, source, up, pres)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pres.results) != 3 {
		t.Fatalf("presenter updates = %d, want 3: fallback surfaces still render", len(pres.results))
	}
	for _, result := range pres.results {
		if !result.Degraded {
			t.Fatal("fallback tick not marked degraded")
		}
		if result.Interpolated != (domain.Surface{}) {
			t.Fatal("fallback surface not all-zero")
		}
		if result.Raw.Values[2][2] != 30 {
			t.Fatal("raw frame dropped on interpolation failure")
		}
	}
}

func TestRunContainsPanic(t *testing.T) {
	source := &fakeSource{panicOn: 2}
	pres := &recordingPresenter{}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 4}, source, &fakeUpsampler{}, pres)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if source.calls != 4 {
		t.Fatalf("acquisitions = %d, want 4: a panicking tick must not stop the run", source.calls)
	}
	if len(pres.results) != 3 {
		t.Fatalf("presenter updates = %d, want 3 (panicked tick skipped)", len(pres.results))
	}
}

func TestRunDegradedFramePropagates(t *testing.T) {
	source := &fakeSource{frame: domain.FallbackFrame(time.Now())}
	pres := &recordingPresenter{}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 1}, source, &fakeUpsampler{}, pres)

	if err := sched.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pres.results) != 1 || !pres.results[0].Degraded {
		t.Fatal("degraded acquisition fallback not propagated to the presenter")
	}
}

func TestRunCancellationBetweenTicks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	source := &fakeSource{}
	pres := &recordingPresenter{onCall: func(n int) {
		if n == 2 {
			cancel()
		}
	}}
	sched := newTestScheduler(SchedulerConfig{TickInterval: time.Millisecond, TickBudget: 100}, source, &fakeUpsampler{}, pres)

	err := sched.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if len(pres.results) != 2 {
		t.Fatalf("presenter updates = %d, want 2 (cancellation checked at tick boundary)", len(pres.results))
	}
}

func TestSetInterval(t *testing.T) {
	sched := newTestScheduler(SchedulerConfig{}, &fakeSource{}, &fakeUpsampler{}, &recordingPresenter{})

	if got := sched.Interval(); got != DefaultTickInterval {
		t.Fatalf("Interval = %v, want default %v", got, DefaultTickInterval)
	}
	sched.SetInterval(250 * time.Millisecond)
	if got := sched.Interval(); got != 250*time.Millisecond {
		t.Fatalf("Interval = %v, want 250ms", got)
	}
	sched.SetInterval(0)
	if got := sched.Interval(); got != 250*time.Millisecond {
		t.Fatalf("Interval = %v, non-positive update must be ignored", got)
	}
}

func TestSchedulerConfigDefaults(t *testing.T) {
	var cfg SchedulerConfig
	cfg.SetDefaults()
	if cfg.TickInterval != DefaultTickInterval {
		t.Fatalf("TickInterval = %v, want %v", cfg.TickInterval, DefaultTickInterval)
	}
	if cfg.TickBudget != DefaultTickBudget {
		t.Fatalf("TickBudget = %d, want %d", cfg.TickBudget, DefaultTickBudget)
	}
}
