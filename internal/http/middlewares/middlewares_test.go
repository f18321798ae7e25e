package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("s3cret")

func sign(t *testing.T, method jwt.SigningMethod, claims IdentityClaims, key interface{}) string {
	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestParseIdentityToken(t *testing.T) {
	raw := sign(t, jwt.SigningMethodHS256, IdentityClaims{
		Name:             "Asha",
		Email:            "asha@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
	}, secret)

	id, err := ParseIdentityToken(raw, secret)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "Asha", id.Name)
	assert.Equal(t, "asha@example.com", id.Email)
}

func TestParseIdentityToken_Rejects(t *testing.T) {
	noSubject := sign(t, jwt.SigningMethodHS256, IdentityClaims{Name: "x"}, secret)
	_, err := ParseIdentityToken(noSubject, secret)
	assert.Error(t, err)

	expired := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}, secret)
	_, err = ParseIdentityToken(expired, secret)
	assert.Error(t, err)

	wrongKey := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, []byte("other"))
	_, err = ParseIdentityToken(wrongKey, secret)
	assert.Error(t, err)

	hs512 := sign(t, jwt.SigningMethodHS512, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, secret)
	_, err = ParseIdentityToken(hs512, secret)
	assert.Error(t, err)
}

func run(e *echo.Echo, path, bearer string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestIdentityAndAdminOnly(t *testing.T) {
	e := echo.New()
	ok := func(c echo.Context) error { return c.String(http.StatusOK, CurrentUserID(c)) }
	g := e.Group("", Identity(string(secret)))
	g.GET("/me", ok)
	g.GET("/admin", ok, AdminOnly("boss"))

	user := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}, secret)
	boss := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "boss"}}, secret)

	assert.Equal(t, http.StatusUnauthorized, run(e, "/me", ""))
	assert.Equal(t, http.StatusUnauthorized, run(e, "/me", "garbage"))
	assert.Equal(t, http.StatusOK, run(e, "/me", user))
	assert.Equal(t, http.StatusForbidden, run(e, "/admin", user))
	assert.Equal(t, http.StatusOK, run(e, "/admin", boss))
}

func TestRateLimiterPerCaller(t *testing.T) {
	e := echo.New()
	e.Use(Identity(string(secret)), RateLimiter(2, time.Minute))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	a := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "a"}}, secret)
	b := sign(t, jwt.SigningMethodHS256, IdentityClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "b"}}, secret)

	assert.Equal(t, http.StatusOK, run(e, "/", a))
	assert.Equal(t, http.StatusOK, run(e, "/", a))
	assert.Equal(t, http.StatusTooManyRequests, run(e, "/", a))
	assert.Equal(t, http.StatusOK, run(e, "/", b))
}
