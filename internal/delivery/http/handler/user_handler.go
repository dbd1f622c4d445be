package handler

import (
	"errors"

	"devconnect/internal/delivery/http/middleware"
	ucauth "devconnect/internal/usecase/auth"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc     ucauth.AuthUsecase
	authMw *middleware.AuthMiddleware
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewUserHandler(uc ucauth.AuthUsecase, authMw *middleware.AuthMiddleware) *UserHandler {
	return &UserHandler{uc: uc, authMw: authMw}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/test", h.Test)
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Get("/current", h.authMw.Middleware(), h.Current)
}

func (h *UserHandler) Test(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Users working"})
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req registerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	errs, ok := validation.Register(map[string]string{
		"name":      req.Name,
		"email":     req.Email,
		"password":  req.Password,
		"password2": req.Password2,
	})
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	usr, err := h.uc.Register(c.Context(), ucauth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, ucauth.ErrEmailTaken) {
			return middleware.NewAppError(fiber.StatusBadRequest, "email already exists",
				fiber.Map{"email": "Email already exists"}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
	}

	return c.JSON(usr)
}

func (h *UserHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	errs, ok := validation.Login(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if !ok {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	tok, err := h.uc.Login(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, ucauth.ErrUserNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "user not found",
				fiber.Map{"email": "User not found"}, err)
		case errors.Is(err, ucauth.ErrPasswordIncorrect):
			return middleware.NewAppError(fiber.StatusBadRequest, "password incorrect",
				fiber.Map{"password": "Password incorrect"}, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
		}
	}

	return c.JSON(fiber.Map{"success": true, "token": tok})
}

func (h *UserHandler) Current(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.Current(c.Context(), userID)
	if err != nil {
		if errors.Is(err, ucauth.ErrUserNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "user not found",
				fiber.Map{"noUser": "User not found"}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
	}

	return c.JSON(fiber.Map{
		"message": "success",
		"user": fiber.Map{
			"id":     usr.ID,
			"name":   usr.Name,
			"email":  usr.Email,
			"avatar": usr.AvatarURL,
		},
	})
}
