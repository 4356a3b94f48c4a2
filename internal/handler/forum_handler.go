package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tennistrivia/internal/service"
)

// ForumHandler serves forum, thread and post endpoints.
type ForumHandler struct {
	forums service.ForumService
}

// NewForumHandler creates a new forum handler.
func NewForumHandler(forums service.ForumService) *ForumHandler {
	return &ForumHandler{forums: forums}
}

// CreateForumRequest represents a forum creation request.
type CreateForumRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Slug        *string `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CreateThreadRequest represents a thread creation request.
type CreateThreadRequest struct {
	Title string  `json:"title" validate:"required,min=1,max=300"`
	Body  *string `json:"body" validate:"omitempty,max=10000"`
}

// PostBodyRequest carries a post body for creation or edit.
type PostBodyRequest struct {
	Body string `json:"body" validate:"required,min=1,max=10000"`
}

// ListForums handles GET /forums.
func (h *ForumHandler) ListForums(c echo.Context) error {
	limit, offset := pagination(c)
	list, err := h.forums.ListForums(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetForum handles GET /forums/:id.
func (h *ForumHandler) GetForum(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	forum, err := h.forums.GetForum(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, forum)
}

// CreateForum handles POST /forums.
func (h *ForumHandler) CreateForum(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	var req CreateForumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	forum, err := h.forums.CreateForum(c.Request().Context(), user.ID, req.Title, req.Description, req.Slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, forum)
}

// UpdateForum handles PATCH /forums/:id; only the creator may update.
func (h *ForumHandler) UpdateForum(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var update service.ForumUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&update); err != nil {
		return err
	}
	forum, err := h.forums.UpdateForum(c.Request().Context(), id, user.ID, update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, forum)
}

// ListThreads handles GET /forums/:id/threads.
func (h *ForumHandler) ListThreads(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	list, err := h.forums.ListThreads(c.Request().Context(), id, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// CreateThread handles POST /forums/:id/threads. A non-empty body becomes the
// thread's first post.
func (h *ForumHandler) CreateThread(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req CreateThreadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	thread, err := h.forums.CreateThread(c.Request().Context(), id, user.ID, req.Title, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, thread)
}

// GetThread handles GET /threads/:id with paginated posts.
func (h *ForumHandler) GetThread(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pagination(c)
	thread, err := h.forums.GetThread(c.Request().Context(), id, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, thread)
}

// CreatePost handles POST /threads/:id/posts.
func (h *ForumHandler) CreatePost(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req PostBodyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	post, err := h.forums.CreatePost(c.Request().Context(), id, user.ID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// UpdatePost handles PATCH /posts/:id; only the author may edit.
func (h *ForumHandler) UpdatePost(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req PostBodyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	post, err := h.forums.UpdatePost(c.Request().Context(), id, user.ID, req.Body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
