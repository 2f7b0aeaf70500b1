package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidIdentity = errors.New("invalid identity token")

	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrOnboardingIncomplete = errors.New("onboarding not complete")

	ErrCannotSwipeSelf    = errors.New("cannot swipe yourself")
	ErrSwipeInFlight      = errors.New("swipe already in progress")
	ErrSwipeAlreadyExists = errors.New("swipe already exists")
	ErrSwipeNotFound      = errors.New("swipe not found")

	ErrMatchNotFound = errors.New("match not found")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrTooFewPhotos     = errors.New("at least 2 photos are required")
	ErrTooManyPhotos    = errors.New("at most 6 photos are allowed")
	ErrUnsupportedMedia = errors.New("unsupported media type")
	ErrPhotoTooLarge    = errors.New("photo exceeds size limit")
	ErrTooManyInterests = errors.New("at most 10 interests are allowed")
)
