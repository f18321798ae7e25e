package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	dto "gigcircle.com/gigcircle/internal/data_models"
)

const identityKey = "identity"

// IdentityClaims are the claims the identity provider puts in its HS256 tokens.
type IdentityClaims struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

func ParseIdentityToken(raw string, secret []byte) (dto.Identity, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return dto.Identity{}, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return dto.Identity{}, errors.New("token has no subject")
	}

	return dto.Identity{
		UserID:  claims.Subject,
		Name:    claims.Name,
		Email:   claims.Email,
		Picture: claims.Picture,
	}, nil
}

// Identity rejects requests without a valid bearer token and stores the caller on the context.
func Identity(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "you need to sign in first")
			}

			id, err := ParseIdentityToken(strings.TrimSpace(raw), key)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func CurrentIdentity(c echo.Context) (dto.Identity, bool) {
	id, ok := c.Get(identityKey).(dto.Identity)
	return id, ok
}

func CurrentUserID(c echo.Context) string {
	id, _ := CurrentIdentity(c)
	return id.UserID
}
