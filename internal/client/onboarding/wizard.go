package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

// RedirectDelay is how long the completion screen stays up before the
// wizard hands over to the app.
const RedirectDelay = 3000 * time.Millisecond

var (
	ErrSubmissionInFlight = errors.New("onboarding: submission already in progress")
	ErrAtFirstStep        = errors.New("onboarding: already at the first step")
	ErrComplete           = errors.New("onboarding: already complete")
	ErrClosed             = errors.New("onboarding: wizard closed")
)

const (
	uploadFailedMessage   = "We couldn't upload your photos. Please try again."
	prepareFailedMessage  = "Some of your answers couldn't be prepared for saving. Please review them and try again."
	completeFailedMessage = "We couldn't save your profile. Please try again."
)

type MediaUploader interface {
	UploadPhotos(ctx context.Context, photos []domain.MediaFile) ([]string, error)
}

type ProfileService interface {
	CompleteOnboarding(ctx context.Context, payload *domain.OnboardingPayload) (*domain.Profile, error)
}

// Result describes the outcome of Advance. Message carries validation or
// submission guidance for the user; Err is set only for submission
// failures and rejected calls.
type Result struct {
	Step     int
	StepName string
	Advanced bool
	Complete bool
	Message  string
	Err      error
}

// Wizard walks a user through onboarding. All methods are safe for
// concurrent use; collaborator calls are made without holding the lock.
type Wizard struct {
	mu         sync.Mutex
	draft      *Draft
	step       int
	message    string
	submitting bool
	complete   bool
	redirected bool
	closed     bool
	profile    *domain.Profile
	redirect   *time.Timer

	media         MediaUploader
	profiles      ProfileService
	onRedirect    func()
	redirectDelay time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

// NewWizard creates a wizard on an empty draft. onRedirect, if not nil,
// runs once RedirectDelay after a successful submission.
func NewWizard(media MediaUploader, profiles ProfileService, onRedirect func(), logger *zap.Logger) *Wizard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wizard{
		draft:         &Draft{},
		media:         media,
		profiles:      profiles,
		onRedirect:    onRedirect,
		redirectDelay: RedirectDelay,
		now:           time.Now,
		logger:        logger,
	}
}

// Advance validates the current step and moves forward. On the last step
// it submits the draft: photos are uploaded first, then the profile is
// completed with the returned URLs.
func (w *Wizard) Advance(ctx context.Context) Result {
	w.mu.Lock()
	switch {
	case w.closed:
		defer w.mu.Unlock()
		return w.resultLocked(false, ErrClosed)
	case w.complete:
		defer w.mu.Unlock()
		return w.resultLocked(false, ErrComplete)
	case w.submitting:
		defer w.mu.Unlock()
		return w.resultLocked(false, ErrSubmissionInFlight)
	}

	if verr := steps[w.step].validate(w.draft, w.now()); verr != nil {
		w.message = verr.Message
		defer w.mu.Unlock()
		return w.resultLocked(false, nil)
	}
	if w.step < len(steps)-1 {
		w.step++
		w.message = ""
		defer w.mu.Unlock()
		return w.resultLocked(true, nil)
	}

	w.submitting = true
	snapshot := w.draft.Clone()
	w.mu.Unlock()

	profile, msg, err := w.submit(ctx, snapshot)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false
	if err != nil {
		w.message = msg
		w.logger.Warn("onboarding submission failed", zap.Int("step", w.step), zap.Error(err))
		return w.resultLocked(false, err)
	}

	w.complete = true
	w.message = ""
	w.profile = profile
	w.draft = draftFromProfile(profile)
	if !w.closed {
		w.redirect = time.AfterFunc(w.redirectDelay, w.fireRedirect)
	}
	w.logger.Info("onboarding complete", zap.String("user_id", profile.UserID))
	return w.resultLocked(true, nil)
}

func (w *Wizard) submit(ctx context.Context, d *Draft) (*domain.Profile, string, error) {
	photos := d.Photos()
	urls, err := w.media.UploadPhotos(ctx, photos)
	if err != nil {
		return nil, uploadFailedMessage, fmt.Errorf("upload photos: %w", err)
	}

	payload, err := BuildPayload(d, urls)
	if err != nil {
		return nil, prepareFailedMessage, fmt.Errorf("build payload: %w", err)
	}

	profile, err := w.profiles.CompleteOnboarding(ctx, payload)
	if err != nil {
		return nil, completeFailedMessage, fmt.Errorf("complete onboarding: %w", err)
	}
	return profile, "", nil
}

func (w *Wizard) fireRedirect() {
	w.mu.Lock()
	if w.closed || w.redirected {
		w.mu.Unlock()
		return
	}
	w.redirected = true
	fn := w.onRedirect
	w.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Retreat moves back one step. The draft is kept; the message is cleared.
func (w *Wizard) Retreat() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrClosed
	case w.complete:
		return ErrComplete
	case w.submitting:
		return ErrSubmissionInFlight
	case w.step == 0:
		return ErrAtFirstStep
	}
	w.step--
	w.message = ""
	return nil
}

// Edit applies fn to a copy of the draft and keeps the copy only when fn
// succeeds and the interest cap still holds, so a failed edit leaves the
// draft untouched.
func (w *Wizard) Edit(fn func(d *Draft) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.closed:
		return ErrClosed
	case w.complete:
		return ErrComplete
	case w.submitting:
		return ErrSubmissionInFlight
	}
	next := w.draft.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if next.Interests.Len() > domain.MaxInterests {
		return domain.ErrTooManyInterests
	}
	w.draft = next
	return nil
}

// Close cancels a scheduled redirect. The wizard rejects further calls.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.redirect != nil {
		w.redirect.Stop()
	}
}

func (w *Wizard) resultLocked(advanced bool, err error) Result {
	return Result{
		Step:     w.step,
		StepName: steps[w.step].name,
		Advanced: advanced,
		Complete: w.complete,
		Message:  w.message,
		Err:      err,
	}
}

func (w *Wizard) Step() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) StepName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return steps[w.step].name
}

func (w *Wizard) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

func (w *Wizard) Complete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.complete
}

func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Redirected reports whether the post-completion redirect has fired.
func (w *Wizard) Redirected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redirected
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() *Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Profile is the server-confirmed profile after a successful submission.
func (w *Wizard) Profile() *domain.Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}
