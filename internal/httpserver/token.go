// internal/httpserver/token.go
//
// Signed session tokens.
// The session id is carried in an HS256 JWT, set as an HttpOnly cookie and
// also accepted as "Authorization: Bearer <token>" for non-browser clients.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenLifetime bounds the cookie; idle sessions expire sooner in the store.
const tokenLifetime = 7 * 24 * time.Hour

var errNoToken = errors.New("no session token")

type ctxSessionKey struct{}

// signSession issues a token for session id.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(tokenLifetime)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := token.SignedString([]byte(s.cfg.SessionSecret))
	return ss, exp, err
}

// parseSession validates a token and returns its session id.
func (s *Server) parseSession(tokenStr string) (string, error) {
	if tokenStr == "" {
		return "", errNoToken
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid session token")
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errors.New("invalid session token")
	}
	return sid, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: s.sameSite(),
		Expires:  exp,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: s.sameSite(),
		MaxAge:   -1,
	})
}

// sameSite is None for cross-site secure deployments, Lax otherwise.
func (s *Server) sameSite() http.SameSite {
	if s.cfg.SecureCookies {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// requireSession rejects requests without a valid token and stores the
// session id in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, err := s.parseSession(s.bearerOrCookie(r))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "no_session", err.Error())
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}
