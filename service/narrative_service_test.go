package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rental-analyzer/domain"
	"rental-analyzer/repository"
)

type fakeGenerator struct {
	calls  atomic.Int32
	text   string
	err    error
	delay  time.Duration
	gotRes domain.AnalysisResult
	mu     sync.Mutex
}

func (f *fakeGenerator) GenerateNarrative(ctx context.Context, in domain.PropertyInput, res domain.AnalysisResult) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.gotRes = res
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeGenerator) Model() string { return "fake-model" }

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}

func TestNarrate_GeneratesAndCaches(t *testing.T) {
	gen := &fakeGenerator{text: "```markdown\n## Executive Summary\nA **solid** deal.\n```"}
	cache := repository.NewMemoryCache()
	svc := NewNarrativeService(gen, cache, time.Hour, zaptest.NewLogger(t))
	input := domain.DefaultPropertyInput()

	first, err := svc.Narrate(context.Background(), input, true)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.Equal(t, "fake-model", first.Model)
	assert.Equal(t, "## Executive Summary\nA **solid** deal.", first.Markdown)
	assert.Contains(t, first.HTML, "<h2>Executive Summary</h2>")
	assert.Contains(t, first.HTML, "<strong>solid</strong>")
	assert.Equal(t, ComputeMetrics(input), first.Analysis)
	assert.Equal(t, ComputeMetrics(input), gen.gotRes)

	second, err := svc.Narrate(context.Background(), input, false)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Markdown, second.Markdown)
	assert.Empty(t, second.HTML)
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestNarrate_DifferentInputsMiss(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	svc := NewNarrativeService(gen, repository.NewMemoryCache(), time.Hour, zaptest.NewLogger(t))

	a := domain.DefaultPropertyInput()
	b := a
	b.GrossMonthlyRent = 3100

	_, err := svc.Narrate(context.Background(), a, false)
	require.NoError(t, err)
	_, err = svc.Narrate(context.Background(), b, false)
	require.NoError(t, err)

	assert.EqualValues(t, 2, gen.calls.Load())
	assert.NotEqual(t, narrativeKey(a, "m"), narrativeKey(b, "m"))
	assert.NotEqual(t, narrativeKey(a, "m"), narrativeKey(a, "other"))
}

func TestNarrate_ErrorsAreNotCached(t *testing.T) {
	gen := &fakeGenerator{err: ErrQuota}
	cache := repository.NewMemoryCache()
	svc := NewNarrativeService(gen, cache, time.Hour, zaptest.NewLogger(t))

	_, err := svc.Narrate(context.Background(), domain.DefaultPropertyInput(), false)
	assert.ErrorIs(t, err, ErrQuota)
	assert.Equal(t, 0, cache.Len())
}

func TestNarrate_CacheFailureFallsThrough(t *testing.T) {
	gen := &fakeGenerator{text: "fresh"}
	svc := NewNarrativeService(gen, failingCache{}, time.Hour, zaptest.NewLogger(t))

	resp, err := svc.Narrate(context.Background(), domain.DefaultPropertyInput(), false)
	require.NoError(t, err)
	assert.Equal(t, "fresh", resp.Markdown)
	assert.False(t, resp.Cached)
}

func TestNarrate_Disabled(t *testing.T) {
	svc := NewNarrativeService(NewDisabledGenerator("gemini-2.5-pro"), nil, 0, zaptest.NewLogger(t))

	_, err := svc.Narrate(context.Background(), domain.DefaultPropertyInput(), false)
	assert.ErrorIs(t, err, ErrAdvisorUnavailable)
}

func TestNarrate_ConcurrentRequestsShareOneCall(t *testing.T) {
	gen := &fakeGenerator{text: "shared", delay: 100 * time.Millisecond}
	svc := NewNarrativeService(gen, nil, 0, zaptest.NewLogger(t))
	input := domain.DefaultPropertyInput()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := svc.Narrate(context.Background(), input, false)
			assert.NoError(t, err)
			assert.Equal(t, "shared", resp.Markdown)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestNarrate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gen := &fakeGenerator{text: "shared", delay: 200 * time.Millisecond}
	svc := NewNarrativeService(gen, repository.NewMemoryCache(), time.Hour, zaptest.NewLogger(t))
	input := domain.DefaultPropertyInput()

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Narrate(firstCtx, input, false)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, time.Millisecond)

	secondResp := make(chan domain.NarrativeResponse, 1)
	secondErr := make(chan error, 1)
	go func() {
		resp, err := svc.Narrate(context.Background(), input, false)
		secondResp <- resp
		secondErr <- err
	}()
	time.Sleep(30 * time.Millisecond)
	cancelFirst()

	assert.ErrorIs(t, <-firstErr, context.Canceled)
	require.NoError(t, <-secondErr)
	assert.Equal(t, "shared", (<-secondResp).Markdown)
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestNarrate_CallerCancellation(t *testing.T) {
	gen := &fakeGenerator{text: "late", delay: 200 * time.Millisecond}
	svc := NewNarrativeService(gen, nil, 0, zaptest.NewLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := svc.Narrate(ctx, domain.DefaultPropertyInput(), false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, "quota", outcomeFor(classifyStatus(429, errors.New("slow down"))))
	assert.Equal(t, "network", outcomeFor(classifyStatus(503, errors.New("unavailable"))))
	assert.Equal(t, "network", outcomeFor(classifyTransport(errors.New("dial tcp: refused"))))
	assert.Equal(t, "unavailable", outcomeFor(ErrAdvisorUnavailable))
	assert.Equal(t, "error", outcomeFor(classifyStatus(400, errors.New("bad prompt"))))
	assert.ErrorIs(t, classifyTransport(context.Canceled), context.Canceled)
}
