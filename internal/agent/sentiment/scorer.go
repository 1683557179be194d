package sentiment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	logx "github.com/Chative-core-poc-v1/bookseller/pkg/logger"
	"github.com/Chative-core-poc-v1/bookseller/pkg/metrics"
)

const DefaultPassTimeout = 8 * time.Second

// Scorer runs every configured pass concurrently and combines the results.
type Scorer struct {
	passes  []Pass
	history model.SentimentHistory
	timeout time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Scorer)

// WithHistory appends every non-blank score to h.
func WithHistory(h model.SentimentHistory) Option {
	return func(s *Scorer) { s.history = h }
}

// WithPassTimeout bounds each pass; a pass still running at the deadline is absent.
func WithPassTimeout(d time.Duration) Option {
	return func(s *Scorer) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scorer) { s.metrics = m }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

func NewScorer(passes []Pass, opts ...Option) *Scorer {
	s := &Scorer{
		passes:  passes,
		timeout: DefaultPassTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score analyses one message for roomID. It never fails: blank input yields the
// neutral score without running any pass, and broken passes simply do not count.
func (s *Scorer) Score(ctx context.Context, roomID, message string) model.SentimentScore {
	start := s.now()
	text := strings.TrimSpace(message)
	if text == "" {
		return model.NeutralScore(start)
	}

	results := make([]passResult, len(s.passes))
	var wg sync.WaitGroup
	for i, p := range s.passes {
		wg.Add(1)
		go func(i int, p Pass) {
			defer wg.Done()
			results[i] = passResult{weight: p.Weight(), partial: s.runPass(ctx, roomID, p, text)}
		}(i, p)
	}
	wg.Wait()

	score := combine(results, text, s.now())
	score.ProcessingTime = s.now().Sub(start)
	s.metrics.RecordScore(score.Label.String())

	if s.history != nil {
		if err := s.history.Record(ctx, roomID, score); err != nil {
			logx.Error().Err(err).Str("room_id", roomID).Msg("failed to record sentiment score")
		}
	}
	return score
}

func (s *Scorer) runPass(ctx context.Context, roomID string, p Pass, text string) *Partial {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		partial *Partial
		err     error
	}
	ch := make(chan result, 1)
	start := time.Now()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- result{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		partial, err := p.Analyze(ctx, text)
		ch <- result{partial, err}
	}()

	var (
		partial *Partial
		outcome string
	)
	select {
	case r := <-ch:
		switch {
		case r.err != nil:
			outcome = "error"
			logx.Warn().Err(r.err).Str("room_id", roomID).Str("pass", p.Name()).Msg("sentiment pass failed")
		case r.partial == nil:
			outcome = "absent"
		default:
			outcome, partial = "ok", r.partial
		}
	case <-ctx.Done():
		outcome = "timeout"
		logx.Warn().Str("room_id", roomID).Str("pass", p.Name()).Dur("timeout", s.timeout).Msg("sentiment pass timed out")
	}
	s.metrics.RecordPass(p.Name(), outcome, time.Since(start))
	return partial
}

// Shifts runs DetectShifts over the room's recorded history.
func (s *Scorer) Shifts(ctx context.Context, roomID string) ([]model.SentimentShift, error) {
	if s.history == nil {
		return nil, nil
	}
	scores, err := s.history.Scores(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return DetectShifts(scores), nil
}

// Summary runs Summarize over the room's recorded history.
func (s *Scorer) Summary(ctx context.Context, roomID string) (model.SentimentSummary, error) {
	if s.history == nil {
		return Summarize(nil), nil
	}
	scores, err := s.history.Scores(ctx, roomID)
	if err != nil {
		return model.SentimentSummary{}, err
	}
	return Summarize(scores), nil
}
