package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"rental-analyzer/domain"
	"rental-analyzer/metrics"
	"rental-analyzer/repository"
)

// NarrativeService produces advisor commentary for a deal. It sits beside
// the metrics engine and only reads its output.
type NarrativeService struct {
	generator NarrativeGenerator
	cache     repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
	group     singleflight.Group
}

func NewNarrativeService(
	generator NarrativeGenerator,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *NarrativeService {
	return &NarrativeService{
		generator: generator,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Narrate computes the metrics for in and returns the advisor narrative for
// them, served from cache when the same deal was already narrated.
func (s *NarrativeService) Narrate(ctx context.Context, in domain.PropertyInput, withHTML bool) (domain.NarrativeResponse, error) {
	res := ComputeMetrics(in)
	key := narrativeKey(in, s.generator.Model())

	resp := domain.NarrativeResponse{
		Analysis: res,
		Model:    s.generator.Model(),
	}

	text, cached, err := s.lookup(ctx, key)
	if err != nil {
		return domain.NarrativeResponse{}, err
	}
	if !cached {
		text, err = s.generate(ctx, key, in, res)
		if err != nil {
			metrics.NarrativesTotal.WithLabelValues(outcomeFor(err)).Inc()
			return domain.NarrativeResponse{}, err
		}
		metrics.NarrativesTotal.WithLabelValues(metrics.OutcomeGenerated).Inc()
	} else {
		metrics.NarrativesTotal.WithLabelValues(metrics.OutcomeCached).Inc()
	}

	resp.Markdown = text
	resp.Cached = cached

	if withHTML {
		html, err := RenderMarkdown(text)
		if err != nil {
			return domain.NarrativeResponse{}, err
		}
		resp.HTML = html
	}

	return resp, nil
}

func (s *NarrativeService) lookup(ctx context.Context, key string) (string, bool, error) {
	if s.cache == nil {
		return "", false, nil
	}
	text, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// cache failures degrade to a fresh generation
		s.logger.Warn("narrative cache lookup failed", zap.String("key", key), zap.Error(err))
		return "", false, nil
	}
	return text, ok, nil
}

func (s *NarrativeService) generate(ctx context.Context, key string, in domain.PropertyInput, res domain.AnalysisResult) (string, error) {
	// the call is shared by every waiter on key, so no single caller may cancel it;
	// providers bound it with their own timeout
	shared := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (interface{}, error) {
		start := time.Now()
		text, err := s.generator.GenerateNarrative(shared, in, res)
		metrics.NarrativeDuration.WithLabelValues(s.generator.Model()).Observe(time.Since(start).Seconds())
		if err != nil {
			s.logger.Error("narrative generation failed",
				zap.String("model", s.generator.Model()),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return "", err
		}

		text = cleanMarkdown(text)
		if s.cache != nil {
			if err := s.cache.Set(shared, key, text, s.cacheTTL); err != nil {
				s.logger.Warn("narrative cache store failed", zap.String("key", key), zap.Error(err))
			}
		}

		s.logger.Info("narrative generated",
			zap.String("model", s.generator.Model()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("length", len(text)),
		)
		return text, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	}
}

// narrativeKey identifies a deal for caching: same inputs and model, same narrative.
func narrativeKey(in domain.PropertyInput, model string) string {
	payload, _ := json.Marshal(in)
	h := xxhash.New()
	_, _ = h.WriteString(model)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(payload)
	return strconv.FormatUint(h.Sum64(), 16)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrQuota):
		return metrics.OutcomeQuota
	case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeNetwork
	case errors.Is(err, ErrAdvisorUnavailable):
		return metrics.OutcomeUnavailable
	}
	return metrics.OutcomeError
}
