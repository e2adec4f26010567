package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// SessionCookieName is the cookie the login handler sets and this gate reads.
const SessionCookieName = "arclab_session"

// Auth validates the session token and injects the user identity into the
// request context. The token is read from the session cookie first, then from
// a bearer Authorization header. Every failure mode (missing, malformed,
// expired, bad signature) surfaces as the same 401 so callers cannot probe
// which check failed; the real cause is only logged.
func Auth(jwtSecret string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				log.Debug().Err(err).Str("path", c.Path()).Msg("session token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			userID, _ := claims["sub"].(string)
			if userID == "" {
				log.Debug().Str("path", c.Path()).Msg("session token missing subject")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set("user_id", userID)
			c.Set("email", claims["email"])

			return next(c)
		}
	}
}

// tokenFromRequest prefers the session cookie and falls back to a bearer
// Authorization header.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
