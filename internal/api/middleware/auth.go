package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
)

// Context keys for storing viewer information
type contextKey string

const viewerIDKey contextKey = "viewer_id"

// SessionName is the cookie name web clients carry their session under
const SessionName = "wayfare_session"

// ViewerMiddleware resolves the optional viewer identity for feed requests.
// API clients send an HS256 bearer token minted at login; web clients carry a
// signed session cookie. Absence of both means anonymous; this middleware
// never rejects a request.
type ViewerMiddleware struct {
	secret []byte
	store  *sessions.CookieStore
}

// NewViewerMiddleware creates the viewer middleware. The secret signs both
// bearer tokens and the session cookie.
func NewViewerMiddleware(secret string) *ViewerMiddleware {
	return &ViewerMiddleware{
		secret: []byte(secret),
		store:  sessions.NewCookieStore([]byte(secret)),
	}
}

// OptionalViewer loads the viewer id into the request context if credentials
// are present and valid. Invalid credentials are logged and treated as
// anonymous rather than rejected: a feed must still render for a viewer whose
// token expired mid-session.
func (m *ViewerMiddleware) OptionalViewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if viewerID := m.resolve(r); viewerID != 0 {
			ctx := context.WithValue(r.Context(), viewerIDKey, viewerID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// resolve tries the bearer token first, then the session cookie
func (m *ViewerMiddleware) resolve(r *http.Request) int64 {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if id := m.parseToken(r, token); id != 0 {
			return id
		}
	}

	session, err := m.store.Get(r, SessionName)
	if err != nil {
		return 0
	}
	if id, ok := session.Values["viewer_id"].(int64); ok {
		return id
	}
	return 0
}

// parseToken validates an HS256 session token and extracts the viewer id
// from the subject claim
func (m *ViewerMiddleware) parseToken(r *http.Request, token string) int64 {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		log.Printf("[AUTH_FAILURE] type=invalid_viewer_token ip=%s path=%s error=%v",
			r.RemoteAddr, r.URL.Path, err)
		return 0
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// GetViewerID returns the authenticated viewer id from the request context,
// or 0 for anonymous requests.
func GetViewerID(r *http.Request) int64 {
	if id, ok := r.Context().Value(viewerIDKey).(int64); ok {
		return id
	}
	return 0
}
