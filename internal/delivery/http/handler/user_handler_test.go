package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/token"
	ucauth "devconnect/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type mockAuthUC struct {
	registerUser user.User
	registerErr  error
	loginToken   string
	loginErr     error
	currentUser  user.User
	currentErr   error

	registerCalls int
}

func (m *mockAuthUC) Register(context.Context, ucauth.RegisterInput) (user.User, error) {
	m.registerCalls++
	return m.registerUser, m.registerErr
}

func (m *mockAuthUC) Login(context.Context, ucauth.LoginInput) (string, error) {
	return m.loginToken, m.loginErr
}

func (m *mockAuthUC) Current(context.Context, uuid.UUID) (user.User, error) {
	return m.currentUser, m.currentErr
}

func newUserTestApp(uc ucauth.AuthUsecase, tokens token.Service) *fiber.App {
	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware().Middleware())

	authMw := middleware.NewAuthMiddleware(tokens)
	NewUserHandler(uc, authMw).RegisterRoutes(app.Group("/api/user"))
	return app
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestUserTestRoute(t *testing.T) {
	app := newUserTestApp(&mockAuthUC{}, token.NewHMACService("test-secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/user/test", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Users working", body["message"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	uc := &mockAuthUC{}
	app := newUserTestApp(uc, token.NewHMACService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", jsonBody(t, map[string]string{}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.NotEmpty(t, body)
	require.Contains(t, body, "name")
	require.Contains(t, body, "email")
	require.Contains(t, body, "password")
	require.Contains(t, body, "password2")
	require.Zero(t, uc.registerCalls, "usecase must not run on validation failure")
}

func TestRegister_EmailConflict(t *testing.T) {
	uc := &mockAuthUC{registerErr: ucauth.ErrEmailTaken}
	app := newUserTestApp(uc, token.NewHMACService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", jsonBody(t, map[string]string{
		"name": "John", "email": "john@example.com", "password": "secret12", "password2": "secret12",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "Email already exists", body["email"])
}

func TestRegister_Success_NoHashInResponse(t *testing.T) {
	uc := &mockAuthUC{registerUser: user.User{
		ID:        uuid.New(),
		Name:      "John",
		Email:     "john@example.com",
		AvatarURL: "https://www.gravatar.com/avatar/x",
	}}
	app := newUserTestApp(uc, token.NewHMACService("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", jsonBody(t, map[string]string{
		"name": "John", "email": "john@example.com", "password": "secret12", "password2": "secret12",
	}))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "john@example.com", body["email"])
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "passwordHash")
}

func TestLogin_Responses(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := newUserTestApp(&mockAuthUC{loginToken: "Bearer abc"}, token.NewHMACService("test-secret", time.Hour))
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", jsonBody(t, map[string]string{
			"email": "john@example.com", "password": "secret12",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, true, body["success"])
		require.Equal(t, "Bearer abc", body["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		app := newUserTestApp(&mockAuthUC{loginErr: ucauth.ErrPasswordIncorrect}, token.NewHMACService("test-secret", time.Hour))
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", jsonBody(t, map[string]string{
			"email": "john@example.com", "password": "wrong",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, "Password incorrect", body["password"])
		require.NotContains(t, body, "token")
	})

	t.Run("unknown email", func(t *testing.T) {
		app := newUserTestApp(&mockAuthUC{loginErr: ucauth.ErrUserNotFound}, token.NewHMACService("test-secret", time.Hour))
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", jsonBody(t, map[string]string{
			"email": "nobody@example.com", "password": "secret12",
		}))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		body := decodeBody(t, resp)
		require.Equal(t, "User not found", body["email"])
	})
}

func TestCurrent_RequiresAuth(t *testing.T) {
	app := newUserTestApp(&mockAuthUC{}, token.NewHMACService("test-secret", time.Hour))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/user/current", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCurrent_WithToken(t *testing.T) {
	tokens := token.NewHMACService("test-secret", time.Hour)
	id := uuid.New()
	uc := &mockAuthUC{currentUser: user.User{
		ID: id, Name: "John", Email: "john@example.com", AvatarURL: "https://www.gravatar.com/avatar/x",
	}}
	app := newUserTestApp(uc, tokens)

	tok, err := tokens.Generate(id, "John", "https://www.gravatar.com/avatar/x")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "success", body["message"])
	usr, ok := body["user"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, id.String(), usr["id"])
	require.Equal(t, "John", usr["name"])
	require.Equal(t, "john@example.com", usr["email"])
}
