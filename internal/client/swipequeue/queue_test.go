package swipequeue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

type fakeDiscovery struct {
	mu      sync.Mutex
	results map[string][]domain.Candidate
	err     error
	// gates blocks fetches for the given joined interests until closed.
	gates   map[string]chan struct{}
	started chan string
}

func (f *fakeDiscovery) FetchCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Candidate, error) {
	key := strings.Join(filter.Interests, ",")
	f.mu.Lock()
	gate := f.gates[key]
	res, err := f.results[key], f.err
	f.mu.Unlock()
	if f.started != nil {
		f.started <- key
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return append([]domain.Candidate(nil), res...), nil
}

type fakeMatching struct {
	mu      sync.Mutex
	likes   []string
	passes  []string
	err     error
	match   map[string]bool
	started chan string
	release chan struct{}
}

func (f *fakeMatching) wait(key string) {
	if f.started != nil {
		f.started <- key
	}
	if f.release != nil {
		<-f.release
	}
}

func (f *fakeMatching) Like(ctx context.Context, key string) (*domain.LikeResult, error) {
	f.mu.Lock()
	f.likes = append(f.likes, key)
	f.mu.Unlock()
	f.wait(key)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.LikeResult{IsMatch: f.match[key]}, nil
}

func (f *fakeMatching) Pass(ctx context.Context, key string) error {
	f.mu.Lock()
	f.passes = append(f.passes, key)
	f.mu.Unlock()
	f.wait(key)
	return f.err
}

func (f *fakeMatching) likeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.likes)
}

func cands(ids ...string) []domain.Candidate {
	out := make([]domain.Candidate, len(ids))
	for i, id := range ids {
		out[i] = domain.Candidate{ID: id, DisplayName: "name-" + id}
	}
	return out
}

func keys(cs []domain.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Key()
	}
	return out
}

func hiking() domain.CandidateFilter {
	return domain.CandidateFilter{Interests: []string{"Hiking"}}
}

func newQueue(d *fakeDiscovery, m *fakeMatching) *Queue {
	return New(d, m, zap.NewNop())
}

func TestLikeRemovesCandidate(t *testing.T) {
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"Hiking": cands("a", "b", "c")}}
	m := &fakeMatching{match: map[string]bool{"a": true}}
	q := newQueue(d, m)
	ctx := context.Background()

	require.NoError(t, q.Load(ctx, hiking()))
	require.Equal(t, 3, q.Len())

	head, ok := q.Head()
	require.True(t, ok)
	res, err := q.Like(ctx, head.Key())
	require.NoError(t, err)
	assert.True(t, res.IsMatch)

	assert.Equal(t, []string{"b", "c"}, keys(q.Candidates()))
	assert.Empty(t, q.Pending())
	assert.NoError(t, q.Err())
}

func TestPassRemovesCandidate(t *testing.T) {
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"Hiking": cands("a", "b")}}
	m := &fakeMatching{}
	q := newQueue(d, m)
	ctx := context.Background()
	require.NoError(t, q.Load(ctx, hiking()))

	require.NoError(t, q.Pass(ctx, "b"))
	assert.Equal(t, []string{"a"}, keys(q.Candidates()))
	assert.Equal(t, []string{"b"}, m.passes)
}

func TestUnknownCandidate(t *testing.T) {
	q := newQueue(&fakeDiscovery{}, &fakeMatching{})
	_, err := q.Like(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	assert.ErrorIs(t, q.Pass(context.Background(), "ghost"), ErrCandidateNotFound)
}

func TestSecondLikeWhilePendingIsNoop(t *testing.T) {
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"Hiking": cands("a", "b", "c")}}
	m := &fakeMatching{started: make(chan string, 1), release: make(chan struct{})}
	q := newQueue(d, m)
	ctx := context.Background()
	require.NoError(t, q.Load(ctx, hiking()))

	done := make(chan error, 1)
	go func() {
		_, err := q.Like(ctx, "a")
		done <- err
	}()
	<-m.started

	assert.True(t, q.IsPending("a"))
	assert.Equal(t, []string{"a"}, q.Pending())
	assert.Equal(t, []string{"b", "c"}, keys(q.Candidates()), "removed before confirmation")

	_, err := q.Like(ctx, "a")
	assert.ErrorIs(t, err, ErrActionPending)
	assert.ErrorIs(t, q.Pass(ctx, "a"), ErrActionPending)
	assert.Equal(t, 1, m.likeCount())

	close(m.release)
	require.NoError(t, <-done)
	assert.Empty(t, q.Pending())
	assert.Equal(t, 1, m.likeCount())
}

func TestFailedLikeRollsBack(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"Hiking": cands("a", "b", "c")}}
	m := &fakeMatching{err: errors.New("status 503")}
	q := New(d, m, zap.New(core))
	ctx := context.Background()
	require.NoError(t, q.Load(ctx, hiking()))

	_, err := q.Like(ctx, "b")
	require.ErrorIs(t, err, m.err)

	assert.Equal(t, []string{"a", "b", "c"}, keys(q.Candidates()))
	assert.Empty(t, q.Pending())
	assert.ErrorIs(t, q.Err(), m.err)
	assert.Equal(t, 1, logs.FilterMessage("swipe action failed").Len())

	m.err = nil
	_, err = q.Like(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, keys(q.Candidates()))
}

func TestFailedActionAfterReloadIsNotReinserted(t *testing.T) {
	d := &fakeDiscovery{results: map[string][]domain.Candidate{
		"Hiking": cands("a", "b"),
		"Music":  cands("x", "y"),
	}}
	m := &fakeMatching{err: errors.New("timeout"), started: make(chan string, 1), release: make(chan struct{})}
	q := newQueue(d, m)
	ctx := context.Background()
	require.NoError(t, q.Load(ctx, hiking()))

	done := make(chan error, 1)
	go func() { done <- q.Pass(ctx, "a") }()
	<-m.started

	require.NoError(t, q.Load(ctx, domain.CandidateFilter{Interests: []string{"Music"}}))
	close(m.release)
	require.Error(t, <-done)

	assert.Equal(t, []string{"x", "y"}, keys(q.Candidates()))
	assert.Error(t, q.Err())
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	gate := make(chan struct{})
	d := &fakeDiscovery{
		results: map[string][]domain.Candidate{
			"Hiking": cands("h1", "h2"),
			"Music":  cands("m1"),
		},
		gates:   map[string]chan struct{}{"Hiking": gate},
		started: make(chan string, 2),
	}
	q := newQueue(d, &fakeMatching{})
	ctx := context.Background()

	first := make(chan error, 1)
	go func() { first <- q.Load(ctx, hiking()) }()
	require.Equal(t, "Hiking", <-d.started)

	require.NoError(t, q.Load(ctx, domain.CandidateFilter{Interests: []string{"Music"}}))
	<-d.started
	close(gate)

	assert.ErrorIs(t, <-first, ErrSuperseded)
	assert.Equal(t, []string{"m1"}, keys(q.Candidates()))
}

func TestLoadFailureClearsQueue(t *testing.T) {
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"Hiking": cands("a")}}
	q := newQueue(d, &fakeMatching{})
	ctx := context.Background()
	require.NoError(t, q.Load(ctx, hiking()))

	d.err = errors.New("offline")
	require.Error(t, q.Load(ctx, hiking()))
	assert.Zero(t, q.Len())
	assert.EqualError(t, q.Err(), "offline")
	_, ok := q.Head()
	assert.False(t, ok)

	d.err = nil
	require.NoError(t, q.Load(ctx, hiking()))
	assert.NoError(t, q.Err())
	assert.Equal(t, 1, q.Len())
}

func TestKeylessCandidatesAreDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	list := []domain.Candidate{
		{ID: "a"},
		{DisplayName: "nobody"},
		{LegacyID: "legacy"},
		{ID: "a", DisplayName: "again"},
	}
	d := &fakeDiscovery{results: map[string][]domain.Candidate{"": list}}
	q := New(d, &fakeMatching{}, zap.New(core))

	require.NotPanics(t, func() {
		require.NoError(t, q.Load(context.Background(), domain.CandidateFilter{}))
	})
	assert.Equal(t, []string{"a", "legacy"}, keys(q.Candidates()))

	diags := q.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, 1, diags[0].Index)
	assert.Equal(t, "missing id", diags[0].Reason)
	assert.Equal(t, 3, diags[1].Index)
	assert.Equal(t, 2, logs.FilterMessage("dropping candidate").Len())
	assert.NoError(t, q.Err())
}
