package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"ecsrs/internal/lifecycle"
	"ecsrs/internal/stats"
	"ecsrs/internal/storage"
	"ecsrs/internal/store"
	"ecsrs/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	engine *lifecycle.Engine
	stats  *stats.Service
	events *lifecycle.Broadcaster

	lgaRepo     *store.LGARepository
	newsRepo    *store.NewsRepository
	profileRepo *store.ProfileRepository
	prefsRepo   *store.NotificationPreferencesRepository
	rolesRepo   *store.UserRoleRepository

	media *storage.MediaStore

	cognito *cognitoidentityprovider.Client
	s3      *s3.Client
	cookie  *securecookie.SecureCookie

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	engine *lifecycle.Engine,
	statsService *stats.Service,
	events *lifecycle.Broadcaster,
	lgaRepo *store.LGARepository,
	newsRepo *store.NewsRepository,
	profileRepo *store.ProfileRepository,
	prefsRepo *store.NotificationPreferencesRepository,
	rolesRepo *store.UserRoleRepository,
	media *storage.MediaStore,
	cognitoClient *cognitoidentityprovider.Client,
	s3Client *s3.Client,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger: logger,
		config: config,

		engine: engine,
		stats:  statsService,
		events: events,

		lgaRepo:     lgaRepo,
		newsRepo:    newsRepo,
		profileRepo: profileRepo,
		prefsRepo:   prefsRepo,
		rolesRepo:   rolesRepo,

		media: media,

		cognito: cognitoClient,
		s3:      s3Client,
		cookie:  securecookie.New(hashKey, blockKey),

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	// Public surface. Submission allows anonymous callers, so it sits
	// behind OptionalAuth rather than RequireAuth.
	r.Group(func(r *flow.Mux) {
		r.Use(s.OptionalAuth)
		r.HandleFunc("/reports", s.handleSubmitReport, http.MethodPost)
	})
	r.HandleFunc("/track/:code", s.handleTrackReport, http.MethodGet)
	r.HandleFunc("/stats", s.handlePublicStats, http.MethodGet)
	r.HandleFunc("/lgas", s.handleListLGAs, http.MethodGet)
	r.HandleFunc("/news", s.handleListNews, http.MethodGet)

	r.HandleFunc("/auth/signup", s.handleSignup, http.MethodPost)
	r.HandleFunc("/auth/confirm", s.handleConfirmSignup, http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout, http.MethodPost)

	// Authenticated surface.
	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/reports", s.handleListReports, http.MethodGet)
		r.HandleFunc("/reports/:reportID", s.handleGetReport, http.MethodGet)
		r.HandleFunc("/reports/:reportID/updates", s.handleReportHistory, http.MethodGet)
		r.HandleFunc("/media", s.handleUploadMedia, http.MethodPost)
		r.HandleFunc("/events", s.handleEventStream, http.MethodGet)

		r.HandleFunc("/profile", s.handleGetProfile, http.MethodGet)
		r.HandleFunc("/profile", s.handleUpdateProfile, http.MethodPut)
		r.HandleFunc("/profile/avatar", s.handleUploadAvatar, http.MethodPost)
		r.HandleFunc("/profile/notifications", s.handleGetNotificationPreferences, http.MethodGet)
		r.HandleFunc("/profile/notifications", s.handleSaveNotificationPreferences, http.MethodPut)

		// Officer workflow.
		r.HandleFunc("/reports/:reportID/start", s.handleStartReport, http.MethodPost)
		r.HandleFunc("/reports/:reportID/resolve", s.handleResolveReport, http.MethodPost)

		// Admin workflow.
		r.HandleFunc("/reports/:reportID/assign", s.handleAssignReport, http.MethodPost)
		r.HandleFunc("/reports/:reportID/unassign", s.handleUnassignReport, http.MethodPost)
		r.HandleFunc("/reports/:reportID/close", s.handleCloseReport, http.MethodPost)
		r.HandleFunc("/reports/:reportID/status", s.handleOverrideStatus, http.MethodPut)
		r.HandleFunc("/reports/:reportID/priority", s.handleSetPriority, http.MethodPut)
		r.HandleFunc("/reports/:reportID/officers", s.handleAssignableOfficers, http.MethodGet)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAdmin)

			r.HandleFunc("/admin/users", s.handleListUserRoles, http.MethodGet)
			r.HandleFunc("/admin/users/:userID/role", s.handleSetUserRole, http.MethodPut)

			r.HandleFunc("/admin/news", s.handleAdminListNews, http.MethodGet)
			r.HandleFunc("/admin/news", s.handleCreateNews, http.MethodPost)
			r.HandleFunc("/admin/news/:newsID", s.handleUpdateNews, http.MethodPut)
			r.HandleFunc("/admin/news/:newsID", s.handleDeleteNews, http.MethodDelete)
		})
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
