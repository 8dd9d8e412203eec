package stylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mishura/internal/cache"
	"mishura/internal/imaging"
	"mishura/internal/logger"
	"mishura/internal/metrics"

	"github.com/cenkalti/backoff/v4"
)

const (
	opAnalyze = "analyze"
	opCompare = "compare"
	opPing    = "ping"
)

// Finish and block reasons after which repeating the request is pointless.
var permanentFinishReasons = map[string]bool{
	"SAFETY":     true,
	"RECITATION": true,
	"MAX_TOKENS": true,
}

type Options struct {
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
}

type Result struct {
	Text   string
	Cached bool
}

type Service struct {
	model     Model
	cache     cache.Store
	optimizer *imaging.Optimizer
	opts      Options
}

// NewService wires the model with caching and retries. A nil model leaves the
// service unconfigured and every call fails with ErrNotConfigured.
func NewService(model Model, store cache.Store, optimizer *imaging.Optimizer, opts Options) *Service {
	if store == nil {
		store = cache.Noop()
	}
	if optimizer == nil {
		optimizer = imaging.NewOptimizer(0, 0)
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	return &Service{
		model:     model,
		cache:     store,
		optimizer: optimizer,
		opts:      opts,
	}
}

func (s *Service) Configured() bool {
	return s.model != nil
}

func (s *Service) Analyze(ctx context.Context, image []byte, occasion, preferences string) (*Result, error) {
	return s.run(ctx, opAnalyze, [][]byte{image}, occasion, preferences, AnalysisPrompt(occasion, preferences))
}

func (s *Service) Compare(ctx context.Context, images [][]byte, occasion, preferences string) (*Result, error) {
	if len(images) < MinCompareImages || len(images) > MaxCompareImages {
		return nil, fmt.Errorf("%w: got %d", ErrImageCount, len(images))
	}
	return s.run(ctx, opCompare, images, occasion, preferences, ComparisonPrompt(occasion, preferences))
}

// Ping sends a short text prompt to check that the model answers.
func (s *Service) Ping(ctx context.Context) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	_, err := s.generate(ctx, opPing, []Part{TextPart(pingPrompt)})
	return err
}

func (s *Service) run(ctx context.Context, op string, images [][]byte, occasion, preferences, prompt string) (*Result, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}

	key := cache.Fingerprint(images, occasion, preferences)
	if text, ok := s.lookup(ctx, key); ok {
		return &Result{Text: text, Cached: true}, nil
	}

	parts := make([]Part, 0, len(images)+1)
	parts = append(parts, TextPart(prompt))
	for i, img := range images {
		optimized, err := s.optimizer.Optimize(img)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", ErrInvalidImage, i+1, err)
		}
		parts = append(parts, ImagePart("image/jpeg", optimized))
	}

	text, err := s.generate(ctx, op, parts)
	if err != nil {
		return nil, err
	}

	if IsErrorText(text) {
		logger.Warn("model answered with an error message", "operation", op, "text", truncate(text, 200))
		return nil, fmt.Errorf("%w: %s", ErrErrorResponse, text)
	}

	if err := s.cache.Set(ctx, key, text); err != nil {
		logger.Warn("failed to store analysis in cache", "key", key, "error", err)
	}

	return &Result{Text: text}, nil
}

func (s *Service) lookup(ctx context.Context, key string) (string, bool) {
	text, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("analysis cache lookup failed", "key", key, "error", err)
		ok = false
	}
	// a poisoned entry is treated as a miss
	if ok && IsErrorText(text) {
		ok = false
	}
	metrics.RecordCacheLookup(ok)
	return text, ok
}

// generate calls the model up to MaxRetries times with a constant delay.
func (s *Service) generate(ctx context.Context, op string, parts []Part) (string, error) {
	start := time.Now()
	var text string

	attempt := func() error {
		callCtx := ctx
		if s.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
			defer cancel()
		}

		resp, err := s.model.Generate(callCtx, parts)
		if err != nil {
			if errors.Is(err, ErrPermissionDenied) {
				return backoff.Permanent(err)
			}
			return err
		}

		if resp.BlockReason != "" {
			return backoff.Permanent(fmt.Errorf("%w: prompt blocked (%s)", ErrBlocked, resp.BlockReason))
		}
		if resp.Text == "" {
			if permanentFinishReasons[resp.FinishReason] {
				return backoff.Permanent(fmt.Errorf("%w: finish reason %s", ErrBlocked, resp.FinishReason))
			}
			return fmt.Errorf("empty response (finish reason %q)", resp.FinishReason)
		}

		text = resp.Text
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryDelay), uint64(s.opts.MaxRetries-1)),
		ctx,
	)

	err := backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
		metrics.RecordAIRetry(op)
		logger.Warn("model request failed, retrying", "operation", op, "error", err, "retry_in", wait)
	})

	elapsed := time.Since(start).Seconds()
	if err != nil {
		outcome := "unavailable"
		switch {
		case errors.Is(err, ErrPermissionDenied):
			outcome = "permission_denied"
		case errors.Is(err, ErrBlocked):
			outcome = "blocked"
		}
		metrics.RecordAIRequest(op, outcome, elapsed)
		logger.Error("model request failed", "operation", op, "error", err)

		if errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrBlocked) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	metrics.RecordAIRequest(op, "success", elapsed)
	return text, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
