package router

import (
	"net/http"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"tennistrivia/internal/handler"
	"tennistrivia/internal/repository"
)

// JWTMiddleware verifies the bearer token's signature and expiry against the
// access secret.
func JWTMiddleware(accessSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(accessSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	})
}

// ResolveUser resolves the verified token's subject to a stored user and
// attaches it to the request context. A subject that no longer exists is a
// 401, not a 500: the token outlived its account.
func ResolveUser(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwtv5.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			subject, err := token.Claims.GetSubject()
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			userID, err := uuid.Parse(subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
				}
				return err
			}
			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
