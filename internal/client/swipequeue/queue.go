// Package swipequeue holds the discovery feed a user swipes through and
// mediates like and pass actions against it.
package swipequeue

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

var (
	ErrActionPending     = errors.New("swipequeue: action already pending for candidate")
	ErrCandidateNotFound = errors.New("swipequeue: candidate not in queue")
	ErrSuperseded        = errors.New("swipequeue: load superseded by a newer request")
)

type Discovery interface {
	FetchCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error)
}

type Matching interface {
	Like(ctx context.Context, userID string) (*domain.LikeResult, error)
	Pass(ctx context.Context, userID string) error
}

// DataQualityError describes a candidate that was dropped at load time.
type DataQualityError struct {
	Index  int
	Name   string
	Reason string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("candidate %d (%q): %s", e.Index, e.Name, e.Reason)
}

// Queue is an ordered candidate list consumed head first. At most one
// action per candidate is in flight; a candidate is removed as soon as an
// action starts and put back at its position if the action fails.
type Queue struct {
	mu          sync.Mutex
	candidates  []domain.Candidate
	pending     map[string]struct{}
	generation  uint64
	err         error
	diagnostics []DataQualityError

	discovery Discovery
	matching  Matching
	logger    *zap.Logger
}

func New(discovery Discovery, matching Matching, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{
		pending:   make(map[string]struct{}),
		discovery: discovery,
		matching:  matching,
		logger:    logger,
	}
}

// Load replaces the queue with a fresh discovery result. When a newer Load
// starts before this one returns, this result is discarded and
// ErrSuperseded is returned.
func (q *Queue) Load(ctx context.Context, filter domain.CandidateFilter) error {
	q.mu.Lock()
	q.generation++
	gen := q.generation
	q.mu.Unlock()

	candidates, err := q.discovery.FetchCandidates(ctx, filter)

	q.mu.Lock()
	defer q.mu.Unlock()
	if gen != q.generation {
		q.logger.Debug("discarding superseded discovery response", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	if err != nil {
		q.candidates = nil
		q.diagnostics = nil
		q.err = err
		q.logger.Warn("failed to load candidates", zap.Error(err))
		return err
	}
	q.candidates, q.diagnostics = q.keyed(candidates)
	q.err = nil
	return nil
}

// keyed drops candidates that cannot be addressed: no id, or an id seen
// earlier in the same response.
func (q *Queue) keyed(in []domain.Candidate) ([]domain.Candidate, []DataQualityError) {
	out := make([]domain.Candidate, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	var dropped []DataQualityError
	for i, c := range in {
		key := c.Key()
		reason := ""
		switch _, dup := seen[key]; {
		case key == "":
			reason = "missing id"
		case dup:
			reason = "duplicate id " + key
		}
		if reason != "" {
			dqe := DataQualityError{Index: i, Name: c.DisplayName, Reason: reason}
			q.logger.Warn("dropping candidate", zap.Error(&dqe))
			dropped = append(dropped, dqe)
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out, dropped
}

// Like likes the candidate with the given key.
func (q *Queue) Like(ctx context.Context, key string) (*domain.LikeResult, error) {
	var result *domain.LikeResult
	err := q.act(ctx, key, "like", func(ctx context.Context) error {
		var err error
		result, err = q.matching.Like(ctx, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Pass passes on the candidate with the given key.
func (q *Queue) Pass(ctx context.Context, key string) error {
	return q.act(ctx, key, "pass", func(ctx context.Context) error {
		return q.matching.Pass(ctx, key)
	})
}

func (q *Queue) act(ctx context.Context, key, action string, call func(context.Context) error) error {
	q.mu.Lock()
	if _, busy := q.pending[key]; busy {
		q.mu.Unlock()
		return ErrActionPending
	}
	idx := q.indexLocked(key)
	if idx < 0 {
		q.mu.Unlock()
		return ErrCandidateNotFound
	}
	removed := q.candidates[idx]
	q.candidates = append(q.candidates[:idx:idx], q.candidates[idx+1:]...)
	q.pending[key] = struct{}{}
	gen := q.generation
	q.mu.Unlock()

	err := call(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.pending, key)
	if err == nil {
		return nil
	}

	q.err = err
	if gen == q.generation && q.indexLocked(key) < 0 {
		if idx > len(q.candidates) {
			idx = len(q.candidates)
		}
		q.candidates = append(q.candidates[:idx:idx], append([]domain.Candidate{removed}, q.candidates[idx:]...)...)
	}
	q.logger.Warn("swipe action failed",
		zap.String("action", action),
		zap.String("candidate_id", key),
		zap.Error(err),
	)
	return err
}

func (q *Queue) indexLocked(key string) int {
	for i := range q.candidates {
		if q.candidates[i].Key() == key {
			return i
		}
	}
	return -1
}

// Candidates returns a copy of the queue, head first.
func (q *Queue) Candidates() []domain.Candidate {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]domain.Candidate(nil), q.candidates...)
}

// Head returns the next candidate to show.
func (q *Queue) Head() (domain.Candidate, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.candidates) == 0 {
		return domain.Candidate{}, false
	}
	return q.candidates[0], true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.candidates)
}

// Pending returns the keys with an action in flight, sorted.
func (q *Queue) Pending() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	keys := make([]string, 0, len(q.pending))
	for k := range q.pending {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (q *Queue) IsPending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[key]
	return ok
}

// Err is the last load or action failure, cleared by a successful Load.
func (q *Queue) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}

// Diagnostics lists the candidates dropped by the last applied Load.
func (q *Queue) Diagnostics() []DataQualityError {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]DataQualityError(nil), q.diagnostics...)
}
