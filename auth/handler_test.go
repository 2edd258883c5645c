package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavanderia/database"
	"lavanderia/render"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Init(db))
	return db
}

func newTestPages(t *testing.T) *render.Renderer {
	t.Helper()
	pages, err := render.New(render.Globals{
		WhatsAppNumber: "51999999999",
		ShopAddress:    "Jr. Dos de Mayo 123",
		PromoBanner:    "promo",
	})
	require.NoError(t, err)
	return pages
}

func postLogin(t *testing.T, handler http.HandlerFunc, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func claimsFromResponse(t *testing.T, s *Sessions, rec *httptest.ResponseRecorder) Claims {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return s.Read(req)
}

func TestLoginGrantsUserSession(t *testing.T) {
	db := newTestDB(t)
	s := NewSessions("test-secret")
	handler := LoginHandler(db, s, newTestPages(t))

	rec := postLogin(t, handler, database.DefaultUserPassword)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/boletas", rec.Header().Get("Location"))

	claims := claimsFromResponse(t, s, rec)
	assert.True(t, claims.User)
	assert.False(t, claims.Admin)
	assert.Equal(t, today(), claims.LoginDate)
}

func TestLoginGrantsAdminSession(t *testing.T) {
	db := newTestDB(t)
	s := NewSessions("test-secret")
	handler := LoginHandler(db, s, newTestPages(t))

	rec := postLogin(t, handler, database.DefaultAdminPassword)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	claims := claimsFromResponse(t, s, rec)
	assert.True(t, claims.User)
	assert.True(t, claims.Admin)
}

func TestLoginAdminBranchWinsWhenPasswordsCollide(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.SetConfigValue(db, database.KeyUserPassword, "misma"))
	require.NoError(t, database.SetConfigValue(db, database.KeyAdminPassword, "misma"))

	s := NewSessions("test-secret")
	rec := postLogin(t, LoginHandler(db, s, newTestPages(t)), "misma")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	claims := claimsFromResponse(t, s, rec)
	assert.True(t, claims.Admin)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newTestDB(t)
	s := NewSessions("test-secret")
	rec := postLogin(t, LoginHandler(db, s, newTestPages(t)), "incorrecta")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Contraseña incorrecta")

	claims := claimsFromResponse(t, s, rec)
	assert.False(t, claims.User)
}

func TestLoginChecksRotatedPasswords(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, database.SetConfigValue(db, database.KeyUserPassword, "rotada"))

	s := NewSessions("test-secret")
	handler := LoginHandler(db, s, newTestPages(t))

	rec := postLogin(t, handler, database.DefaultUserPassword)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postLogin(t, handler, "rotada")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLoginHonorsNextParameter(t *testing.T) {
	db := newTestDB(t)
	s := NewSessions("test-secret")
	handler := LoginHandler(db, s, newTestPages(t))

	form := url.Values{}
	form.Set("password", database.DefaultUserPassword)
	req := httptest.NewRequest(http.MethodPost, "/login?next=%2Fboleta%2F7", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/boleta/7", rec.Header().Get("Location"))
}

func TestAdminLogoutKeepsUserSession(t *testing.T) {
	s := NewSessions("test-secret")
	handler := AdminLogoutHandler(s)

	req := requestWithSession(t, s, Claims{User: true, Admin: true, LoginDate: today()})
	rec := httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	claims := claimsFromResponse(t, s, rec)
	assert.True(t, claims.User)
	assert.False(t, claims.Admin)
}

func TestLogoutClearsSession(t *testing.T) {
	s := NewSessions("test-secret")
	handler := LogoutHandler(s)

	req := requestWithSession(t, s, Claims{User: true, Admin: true, LoginDate: today()})
	rec := httptest.NewRecorder()
	handler(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	claims := claimsFromResponse(t, s, rec)
	assert.False(t, claims.User)
	assert.False(t, claims.Admin)
}
