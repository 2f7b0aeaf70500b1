package swipe

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/locks"
	"github.com/gdugdh24/faithmatch-backend/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const enrichTimeout = 30 * time.Second

// Locker grants short-lived exclusive locks by key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (locks.Unlock, bool, error)
}

// Notifier delivers advisory events. It must not block on delivery
// failures.
type Notifier interface {
	Notify(ctx context.Context, userID, actorID string, typ domain.NotificationType, matchID *string)
}

// CacheInvalidator drops cached discovery results of a viewer.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, viewerID string) error
}

// MatchEnricher writes the AI explanation and icebreakers of a new match.
type MatchEnricher interface {
	GenerateMatchExplanation(ctx context.Context, user1, user2 gemini.MatchTraits) (string, error)
	GenerateIcebreakers(ctx context.Context, user1Interests, user2Interests []string) ([]string, error)
}

type SwipeUseCase struct {
	swipeRepo   repository.SwipeRepository
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	locker      Locker
	lockTTL     time.Duration
	notifier    Notifier
	cache       CacheInvalidator
	enricher    MatchEnricher
	now         func() time.Time
	logger      *zap.Logger

	background sync.WaitGroup
}

func NewSwipeUseCase(
	swipeRepo repository.SwipeRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	locker Locker,
	lockTTL time.Duration,
	notifier Notifier,
	cache CacheInvalidator,
	enricher MatchEnricher,
	logger *zap.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		swipeRepo:   swipeRepo,
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		locker:      locker,
		lockTTL:     lockTTL,
		notifier:    notifier,
		cache:       cache,
		enricher:    enricher,
		now:         time.Now,
		logger:      logger.Named("swipe"),
	}
}

// Like records a like of swipedID and reports whether it completed a
// mutual match. Repeating a like returns the same result without writing
// anything new.
func (uc *SwipeUseCase) Like(ctx context.Context, swiperID, swipedID string) (*domain.LikeResult, error) {
	var result *domain.LikeResult
	err := uc.withPairLock(ctx, swiperID, swipedID, func() error {
		var err error
		result, err = uc.like(ctx, swiperID, swipedID)
		return err
	})
	return result, err
}

// Pass records a pass. Repeating it is a no-op.
func (uc *SwipeUseCase) Pass(ctx context.Context, swiperID, swipedID string) error {
	return uc.withPairLock(ctx, swiperID, swipedID, func() error {
		_, err := uc.record(ctx, swiperID, swipedID, false)
		return err
	})
}

// withPairLock rejects the call with ErrSwipeInFlight while another swipe
// of the same pair is being processed.
func (uc *SwipeUseCase) withPairLock(ctx context.Context, swiperID, swipedID string, fn func() error) error {
	if swiperID == swipedID {
		return domain.ErrCannotSwipeSelf
	}
	if _, err := uc.profileRepo.GetByUserID(ctx, swipedID); err != nil {
		return err
	}

	unlock, ok, err := uc.locker.TryLock(ctx, "swipe:"+swiperID+":"+swipedID, uc.lockTTL)
	if err != nil {
		return fmt.Errorf("failed to acquire swipe lock: %w", err)
	}
	if !ok {
		return domain.ErrSwipeInFlight
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("release swipe lock failed", zap.Error(err))
		}
	}()

	return fn()
}

// record stores the swipe once. A stored swipe in the other direction
// wins and is reported as ErrSwipeAlreadyExists.
func (uc *SwipeUseCase) record(ctx context.Context, swiperID, swipedID string, isLike bool) (bool, error) {
	swipe := &domain.Swipe{
		SwiperID: swiperID,
		SwipedID: swipedID,
		IsLike:   isLike,
	}
	created, err := uc.swipeRepo.Create(ctx, swipe)
	if err != nil {
		return false, fmt.Errorf("failed to create swipe: %w", err)
	}
	if !created && swipe.IsLike != isLike {
		return false, domain.ErrSwipeAlreadyExists
	}

	if created && uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, swiperID); err != nil {
			uc.logger.Warn("discovery cache invalidation failed", zap.String("user_id", swiperID), zap.Error(err))
		}
	}
	return created, nil
}

func (uc *SwipeUseCase) like(ctx context.Context, swiperID, swipedID string) (*domain.LikeResult, error) {
	created, err := uc.record(ctx, swiperID, swipedID, true)
	if err != nil {
		return nil, err
	}

	isMutual, err := uc.swipeRepo.CheckMutualLike(ctx, swiperID, swipedID)
	if err != nil {
		return nil, fmt.Errorf("failed to check mutual like: %w", err)
	}

	if !isMutual {
		if created {
			uc.notify(ctx, swipedID, swiperID, domain.NotificationProfileLiked, nil)
		}
		return &domain.LikeResult{IsMatch: false}, nil
	}

	match, matchCreated, err := uc.ensureMatch(ctx, swiperID, swipedID)
	if err != nil {
		return nil, err
	}
	if !match.IsActive {
		return &domain.LikeResult{IsMatch: false}, nil
	}

	if matchCreated {
		uc.logger.Info("match created", zap.String("match_id", match.ID))
		uc.notify(ctx, swiperID, swipedID, domain.NotificationNewMatch, &match.ID)
		uc.notify(ctx, swipedID, swiperID, domain.NotificationNewMatch, &match.ID)
		uc.enrichAsync(ctx, match.ID, swiperID, swipedID)
	}

	result := &domain.LikeResult{IsMatch: true, Match: match}
	profiles, err := uc.profileRepo.GetByUserIDs(ctx, []string{swiperID, swipedID})
	if err != nil {
		uc.logger.Warn("load matched profile failed", zap.String("user_id", swipedID), zap.Error(err))
		return result, nil
	}
	if p, ok := profiles[swipedID]; ok {
		card := domain.NewCandidate(p, profiles[swiperID], uc.now())
		result.MatchedUser = &card
	}
	return result, nil
}

// ensureMatch returns the pair's match, creating it when missing.
func (uc *SwipeUseCase) ensureMatch(ctx context.Context, a, b string) (*domain.Match, bool, error) {
	user1ID, user2ID := domain.OrderedPair(a, b)

	existing, err := uc.matchRepo.GetByUsers(ctx, user1ID, user2ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, false, fmt.Errorf("failed to get match: %w", err)
	}

	match := &domain.Match{
		User1ID:  user1ID,
		User2ID:  user2ID,
		IsActive: true,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		return nil, false, fmt.Errorf("failed to create match: %w", err)
	}
	return match, true, nil
}

func (uc *SwipeUseCase) notify(ctx context.Context, userID, actorID string, typ domain.NotificationType, matchID *string) {
	if uc.notifier == nil {
		return
	}
	uc.notifier.Notify(ctx, userID, actorID, typ, matchID)
}

// enrichAsync generates the match explanation and icebreakers in the
// background. The request context only contributes its values.
func (uc *SwipeUseCase) enrichAsync(ctx context.Context, matchID, user1ID, user2ID string) {
	if uc.enricher == nil {
		return
	}
	uc.background.Add(1)
	go func() {
		defer uc.background.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enrichTimeout)
		defer cancel()
		if err := uc.enrichMatch(ctx, matchID, user1ID, user2ID); err != nil {
			uc.logger.Warn("match enrichment failed", zap.String("match_id", matchID), zap.Error(err))
		}
	}()
}

func (uc *SwipeUseCase) enrichMatch(ctx context.Context, matchID, user1ID, user2ID string) error {
	profiles, err := uc.profileRepo.GetByUserIDs(ctx, []string{user1ID, user2ID})
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}
	p1, p2 := profiles[user1ID], profiles[user2ID]
	if p1 == nil || p2 == nil {
		return domain.ErrProfileNotFound
	}

	var (
		explanation string
		icebreakers []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		explanation, err = uc.enricher.GenerateMatchExplanation(gctx, traitsOf(p1), traitsOf(p2))
		return err
	})
	g.Go(func() error {
		var err error
		icebreakers, err = uc.enricher.GenerateIcebreakers(gctx, p1.Interests, p2.Interests)
		if err != nil {
			uc.logger.Debug("icebreakers unavailable", zap.String("match_id", matchID), zap.Error(err))
			icebreakers = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return uc.matchRepo.UpdateAIFields(ctx, matchID, explanation, icebreakers)
}

func traitsOf(p *domain.Profile) gemini.MatchTraits {
	t := gemini.MatchTraits{
		Name:         p.DisplayName,
		FaithJourney: p.FaithJourney,
		Interests:    p.Interests,
		Values:       p.Values,
	}
	if p.Denomination != nil {
		t.Denomination = *p.Denomination
	}
	if p.Bio != nil {
		t.Bio = *p.Bio
	}
	return t
}

// Wait blocks until background match enrichment has finished.
func (uc *SwipeUseCase) Wait() {
	uc.background.Wait()
}

// GetLikesReceived returns users who liked userID and have not been
// answered yet, newest first.
func (uc *SwipeUseCase) GetLikesReceived(ctx context.Context, userID string, limit, offset int) ([]domain.LikeReceived, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	likes, err := uc.swipeRepo.GetLikesReceived(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get likes received: %w", err)
	}

	ids := make([]string, 0, len(likes)+1)
	ids = append(ids, userID)
	for _, like := range likes {
		ids = append(ids, like.SwiperID)
	}
	profiles, err := uc.profileRepo.GetByUserIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	now := uc.now()
	out := make([]domain.LikeReceived, 0, len(likes))
	for _, like := range likes {
		p, ok := profiles[like.SwiperID]
		if !ok {
			continue
		}
		card := domain.NewCandidate(p, profiles[userID], now)
		out = append(out, domain.LikeReceived{
			SwipeID:   like.ID,
			User:      &card,
			CreatedAt: like.CreatedAt,
		})
	}
	return out, nil
}
