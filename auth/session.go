// Package auth gates the protected pages behind the two shared passwords.
// The session is a signed JWT in a cookie carrying the user/admin flags and
// the calendar date of the login; user sessions die at local midnight.
package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lavanderia/render"
)

const (
	cookieName = "lava_session"

	// cookie lifetime; the daily gate expires sessions well before this.
	sessionTTL = 7 * 24 * time.Hour
)

// Claims is the session payload.
type Claims struct {
	User      bool   `json:"user"`
	Admin     bool   `json:"admin"`
	LoginDate string `json:"loginDate"`
	jwt.RegisteredClaims
}

// Sessions signs and verifies session cookies.
type Sessions struct {
	secret []byte
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: []byte(secret)}
}

// Read returns the claims from the request cookie, or zero claims when the
// cookie is absent, expired or tampered with.
func (s *Sessions) Read(r *http.Request) Claims {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return Claims{}
	}
	var claims Claims
	tok, err := jwt.ParseWithClaims(c.Value, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return Claims{}
	}
	return claims
}

// Write signs the claims and sets the session cookie.
func (s *Sessions) Write(w http.ResponseWriter, claims Claims) error {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear drops the session cookie entirely.
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", MaxAge: -1})
}

// today formats the current calendar date the way LoginDate stores it.
func today() string {
	return time.Now().Format("2006-01-02")
}

// RequireLogin rejects requests whose session lacks the user flag or was
// issued on an earlier calendar date.
func (s *Sessions) RequireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := s.Read(r)
		if !c.User || c.LoginDate != today() {
			render.AddFlash(w, "info", "Por favor, inicia sesión para acceder a esta página.")
			http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// RequireAdmin rejects requests whose session lacks the admin flag.
func (s *Sessions) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Read(r).Admin {
			http.Redirect(w, r, "/admin/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
