package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/yazeedhani/Gytshop-API/pkg/errs"
	"github.com/yazeedhani/Gytshop-API/pkg/response"
)

// RequireToken validates the caller's JWT and stashes it under "user" for
// ExtractTokenUser. Both `Authorization: Bearer <token>` and the Rails-style
// `Authorization: Token token=<token>` header forms are accepted.
func RequireToken(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")

			var raw string
			switch {
			case strings.HasPrefix(header, "Bearer "):
				raw = strings.TrimPrefix(header, "Bearer ")
			case strings.HasPrefix(header, "Token token="):
				raw = strings.TrimPrefix(header, "Token token=")
			}

			if raw == "" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn, nil)
			}

			c.Set("user", token)

			return next(c)
		}
	}
}
