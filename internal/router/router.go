package router

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"tennistrivia/internal/config"
	"tennistrivia/internal/errors"
	"tennistrivia/internal/handler"
	"tennistrivia/internal/model"
	"tennistrivia/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	picksHandler *handler.PicksHandler,
	rankingHandler *handler.RankingHandler,
	forumHandler *handler.ForumHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	api := e.Group("/api/v1")

	// Public auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public catalog reads
	api.GET("/tournaments", catalogHandler.ListTournaments)
	api.GET("/tournaments/:id", catalogHandler.GetTournament)
	api.GET("/players", catalogHandler.ListPlayers)
	api.GET("/players/:id", catalogHandler.GetPlayer)
	api.GET("/matches", catalogHandler.ListMatches)
	api.GET("/matches/:id", catalogHandler.GetMatch)
	api.GET("/matches/player/slug/:slug", catalogHandler.ListMatchesByPlayerSlug)
	api.GET("/matches/player/:playerId", catalogHandler.ListMatchesByPlayer)

	// Public forum reads
	api.GET("/forums", forumHandler.ListForums)
	api.GET("/forums/:id", forumHandler.GetForum)
	api.GET("/forums/:id/threads", forumHandler.ListThreads)
	api.GET("/threads/:id", forumHandler.GetThread)

	// Secured routes: token verification then user resolution
	secured := api.Group("", JWTMiddleware(cfg.AccessSecret), ResolveUser(userRepo))

	secured.GET("/me/picks", picksHandler.Get)
	secured.PUT("/me/picks", picksHandler.Set)

	for _, kind := range model.RankingKinds {
		secured.GET("/me/rankings/"+string(kind), rankingHandler.Get(kind))
		secured.PUT("/me/rankings/"+string(kind), rankingHandler.Set(kind))
	}

	secured.POST("/forums", forumHandler.CreateForum)
	secured.PATCH("/forums/:id", forumHandler.UpdateForum)
	secured.POST("/forums/:id/threads", forumHandler.CreateThread)
	secured.POST("/threads/:id/posts", forumHandler.CreatePost)
	secured.PATCH("/posts/:id", forumHandler.UpdatePost)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ErrorHandler is the single boundary translator: every domain error, echo
// error and validation failure is shaped into the common error body here.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var resp errors.ErrorResponse
	var httpErr *errors.HTTPError
	var echoErr *echo.HTTPError
	var validationErrs validator.ValidationErrors

	switch {
	case stderrors.As(err, &httpErr):
		resp = httpErr.ToErrorResponse()
	case stderrors.As(err, &validationErrs):
		resp = errors.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Error:      "Bad Request",
			Message:    validationErrs.Error(),
			Code:       "VALIDATION_ERROR",
		}
	case stderrors.As(err, &echoErr):
		resp = errors.ErrorResponse{
			StatusCode: echoErr.Code,
			Error:      http.StatusText(echoErr.Code),
			Message:    fmt.Sprintf("%v", echoErr.Message),
		}
	default:
		// never leak internals
		resp = errors.ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Error:      "Internal Server Error",
			Message:    "Internal server error",
		}
		c.Logger().Error(err)
	}

	if err := c.JSON(resp.StatusCode, resp); err != nil {
		c.Logger().Error(err)
	}
}
