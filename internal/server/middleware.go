package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"ecsrs/internal"
	"ecsrs/internal/lifecycle"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const contextKeyActor contextKey = "actor"

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireAuth verifies the caller's access token and puts the resolved
// Actor (identity + portal role) on the context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.authenticate(r)
		if err != nil {
			s.logger.WithError(err).Debug("authentication failed")
			s.respondErrorMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth resolves the Actor when credentials are present but lets
// anonymous callers straight through. Used by the submission endpoint.
func (s *Service) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, err := s.authenticate(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin layers on RequireAuth; the actor must already be on the
// context.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := s.actorFromContext(r.Context())
		if !actor.Role.IsAdmin() {
			s.respondErrorMessage(w, http.StatusForbidden, "administrator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate accepts either a Bearer token or the encrypted access
// token cookie, verifies the JWT against the identity provider's JWKS,
// then loads the caller's portal role.
func (s *Service) authenticate(r *http.Request) (lifecycle.Actor, error) {

	accessToken, err := s.accessTokenFromRequest(r)
	if err != nil {
		return lifecycle.Anonymous, err
	}

	set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
	if err != nil {
		return lifecycle.Anonymous, err
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return lifecycle.Anonymous, err
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return lifecycle.Anonymous, errNoSubject
	}

	role, err := s.rolesRepo.RoleForUser(r.Context(), userID)
	if err != nil {
		return lifecycle.Anonymous, err
	}

	return lifecycle.Actor{
		UserID:        userID,
		Role:          role.Role,
		AssignedLGAID: role.AssignedLGAID,
	}, nil
}

func (s *Service) accessTokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}

	cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
	if err != nil {
		return "", err
	}

	var accessToken string
	if err := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); err != nil {
		return "", err
	}

	return accessToken, nil
}

func (s *Service) actorFromContext(ctx context.Context) lifecycle.Actor {
	actor, _ := ctx.Value(contextKeyActor).(lifecycle.Actor)
	return actor
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
