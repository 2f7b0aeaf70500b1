// Package apitest runs the full HTTP API over in-memory repositories for
// tests of API consumers.
package apitest

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	deliveryhttp "github.com/gdugdh24/faithmatch-backend/internal/delivery/http"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/locks"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/faithmatch-backend/internal/testsupport"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/auth"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/feed"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/match"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/media"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/notification"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/profile"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/swipe"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type Server struct {
	URL   string
	Store *testsupport.Store
}

// NewServer starts the API on a loopback listener. Identity tokens of the
// form "google:<subject>" log in as <subject>.
func NewServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := testsupport.NewStore()

	photoStore, err := storage.NewLocalPhotoStore(t.TempDir(), "http://test/media")
	require.NoError(t, err)

	authUC := auth.NewAuthUseCase(store.Users(), store.Sessions(), testsupport.StubVerifier{}, testSecret, time.Hour, logger)
	notifier := notification.NewNotificationUseCase(store.Notifications(), nil, logger)
	swipeUC := swipe.NewSwipeUseCase(store.Swipes(), store.Matches(), store.Profiles(), locks.NewLocalLock(), time.Second, notifier, nil, nil, logger)

	router := deliveryhttp.NewRouter(
		handler.NewAuthHandler(authUC),
		handler.NewProfileHandler(profile.NewProfileUseCase(store.Profiles(), store.Users(), nil, nil, logger)),
		handler.NewMediaHandler(media.NewMediaUseCase(photoStore, 1<<20, logger), 1<<20),
		handler.NewDiscoverHandler(feed.NewFeedUseCase(store.Profiles(), store.Swipes(), nil, 0, 20, logger)),
		handler.NewSwipeHandler(swipeUC),
		handler.NewMatchHandler(match.NewMatchUseCase(store.Matches(), store.Profiles(), logger)),
		handler.NewNotificationHandler(notifier),
		middleware.NewAuthMiddleware(authUC),
		photoStore.Dir(),
		logger,
	)
	engine, err := router.Setup()
	require.NoError(t, err)

	srv := httptest.NewServer(engine)
	t.Cleanup(func() {
		srv.Close()
		swipeUC.Wait()
	})
	return &Server{URL: srv.URL, Store: store}
}
