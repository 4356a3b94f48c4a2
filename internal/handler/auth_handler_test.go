package handler

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tennistrivia/internal/errors"
	"tennistrivia/internal/model"
	"tennistrivia/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, password string, displayName *string) (*model.User, *service.TokenPair, error) {
	args := m.Called(ctx, email, password, displayName)
	user, _ := args.Get(0).(*model.User)
	pair, _ := args.Get(1).(*service.TokenPair)
	return user, pair, args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.User, *service.TokenPair, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*model.User)
	pair, _ := args.Get(1).(*service.TokenPair)
	return user, pair, args.Error(2)
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	pair, _ := args.Get(0).(*service.TokenPair)
	return pair, args.Error(1)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// errorBody mirrors the common error response shape.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	Code       string `json:"code"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newAuthTestServer(svc service.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var httpErr *errors.HTTPError
		if stderrors.As(err, &httpErr) {
			_ = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			return
		}
		var validationErrs validator.ValidationErrors
		if stderrors.As(err, &validationErrs) {
			_ = c.JSON(http.StatusBadRequest, errors.ErrorResponse{
				StatusCode: http.StatusBadRequest,
				Error:      "Bad Request",
				Message:    validationErrs.Error(),
				Code:       "VALIDATION_ERROR",
			})
			return
		}
		e.DefaultHTTPErrorHandler(err, c)
	}

	h := NewAuthHandler(svc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.POST("/auth/refresh", h.Refresh)
	e.POST("/auth/logout", h.Logout)
	return e
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(mockAuthService)
	user := &model.User{ID: uuid.New(), Email: "new@example.com"}
	pair := &service.TokenPair{AccessToken: "at", RefreshToken: "rt", ExpiresIn: "15m"}
	svc.On("Register", mock.Anything, "new@example.com", "long-enough", (*string)(nil)).Return(user, pair, nil)

	rec := doJSON(t, newAuthTestServer(svc), http.MethodPost, "/auth/register",
		`{"email":"new@example.com","password":"long-enough"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "at", resp.AccessToken)
	assert.Equal(t, "15m", resp.ExpiresIn)
	svc.AssertExpectations(t)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	svc := new(mockAuthService)
	e := newAuthTestServer(svc)

	tests := []struct {
		name string
		body string
	}{
		{"short password", `{"email":"a@example.com","password":"short"}`},
		{"bad email", `{"email":"not-an-email","password":"long-enough"}`},
		{"missing fields", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, e, http.MethodPost, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
		})
	}
	svc.AssertNotCalled(t, "Register")
}

func TestAuthHandler_LoginRejection(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "who@example.com", "whatever").
		Return(nil, nil, errors.Unauthorized("Invalid email or password"))

	rec := doJSON(t, newAuthTestServer(svc), http.MethodPost, "/auth/login",
		`{"email":"who@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.StatusCode)
	assert.Equal(t, "Invalid email or password", body.Message)
}

func TestAuthHandler_RefreshOmitsUser(t *testing.T) {
	svc := new(mockAuthService)
	pair := &service.TokenPair{AccessToken: "at2", RefreshToken: "rt2", ExpiresIn: "15m"}
	svc.On("Refresh", mock.Anything, "rt1").Return(pair, nil)

	rec := doJSON(t, newAuthTestServer(svc), http.MethodPost, "/auth/refresh",
		`{"refreshToken":"rt1"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "user")
	assert.Contains(t, raw, "accessToken")
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Logout", mock.Anything, "rt1").Return(nil)

	rec := doJSON(t, newAuthTestServer(svc), http.MethodPost, "/auth/logout",
		`{"refreshToken":"rt1"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	svc.AssertExpectations(t)
}
