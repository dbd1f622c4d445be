package handler

import (
	"errors"

	"devconnect/internal/delivery/http/middleware"
	ucprofile "devconnect/internal/usecase/profile"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const (
	msgNoProfile       = "There is no profile for this user"
	msgNoProfiles      = "There are no profiles"
	msgAddProfileFirst = "Please add a profile first"
)

type ProfileHandler struct {
	uc     ucprofile.ProfileUsecase
	authMw *middleware.AuthMiddleware
}

type profileRequest struct {
	Handle         string `json:"handle"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileHandler(uc ucprofile.ProfileUsecase, authMw *middleware.AuthMiddleware) *ProfileHandler {
	return &ProfileHandler{uc: uc, authMw: authMw}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	auth := h.authMw.Middleware()

	r.Get("/test", h.Test)
	r.Get("/all", h.All)
	r.Get("/handle/:handle", h.ByHandle)
	r.Get("/user/:user_id", h.ByUserID)
	r.Get("/", auth, h.Current)
	r.Post("/", auth, h.Upsert)
	r.Post("/experience", auth, h.AddExperience)
	r.Post("/education", auth, h.AddEducation)
	r.Delete("/experience/:exp_id", auth, h.RemoveExperience)
	r.Delete("/education/:edu_id", auth, h.RemoveEducation)
	r.Delete("/", auth, h.Delete)
}

func (h *ProfileHandler) Test(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Profile working"})
}

func (h *ProfileHandler) Current(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetByUserID(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) All(c fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		if errors.Is(err, ucprofile.ErrNoProfiles) {
			return middleware.NewAppError(fiber.StatusNotFound, "no profiles",
				fiber.Map{"noProfile": msgNoProfiles}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
	}
	return c.JSON(list)
}

func (h *ProfileHandler) ByHandle(c fiber.Ctx) error {
	p, err := h.uc.GetByHandle(c.Context(), c.Params("handle"))
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) ByUserID(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "no profile",
			fiber.Map{"noProfile": msgNoProfile}, err)
	}

	p, err := h.uc.GetByUserID(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req profileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	errs, valid := validation.Profile(map[string]string{
		"handle":    req.Handle,
		"status":    req.Status,
		"website":   req.Website,
		"youtube":   req.Youtube,
		"twitter":   req.Twitter,
		"facebook":  req.Facebook,
		"linkedin":  req.Linkedin,
		"instagram": req.Instagram,
	})
	if !valid {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	p, err := h.uc.Upsert(c.Context(), userID, ucprofile.UpsertInput{
		Handle:         req.Handle,
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Youtube:        req.Youtube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		Linkedin:       req.Linkedin,
		Instagram:      req.Instagram,
	})
	if err != nil {
		if errors.Is(err, ucprofile.ErrHandleTaken) {
			return middleware.NewAppError(fiber.StatusBadRequest, "handle already exists",
				fiber.Map{"handle": "That handle already exists"}, err)
		}
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req experienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	errs, valid := validation.Experience(map[string]string{
		"title":   req.Title,
		"company": req.Company,
		"from":    req.From,
	})
	if !valid {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	p, err := h.uc.AddExperience(c.Context(), userID, ucprofile.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, ucprofile.ErrNoProfile) {
			return middleware.NewAppError(fiber.StatusNotFound, "no profile",
				fiber.Map{"noProfile": msgAddProfileFirst}, err)
		}
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req educationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	errs, valid := validation.Education(map[string]string{
		"school":       req.School,
		"degree":       req.Degree,
		"fieldofstudy": req.FieldOfStudy,
		"from":         req.From,
	})
	if !valid {
		return middleware.NewAppError(fiber.StatusBadRequest, "validation failed", errs, nil)
	}

	p, err := h.uc.AddEducation(c.Context(), userID, ucprofile.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, ucprofile.ErrNoProfile) {
			return middleware.NewAppError(fiber.StatusNotFound, "no profile",
				fiber.Map{"noProfile": msgAddProfileFirst}, err)
		}
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.RemoveExperience(c.Context(), userID, c.Params("exp_id"))
	if err != nil {
		if errors.Is(err, ucprofile.ErrNoExperience) {
			return middleware.NewAppError(fiber.StatusNotFound, "no experience",
				fiber.Map{"noExperience": "There is no experience with this id"}, err)
		}
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.RemoveEducation(c.Context(), userID, c.Params("edu_id"))
	if err != nil {
		if errors.Is(err, ucprofile.ErrNoEducation) {
			return middleware.NewAppError(fiber.StatusNotFound, "no education",
				fiber.Map{"noEducation": "There is no education with this id"}, err)
		}
		return mapProfileError(err)
	}
	return c.JSON(p)
}

func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	if err := h.uc.Delete(c.Context(), userID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func mapProfileError(err error) error {
	if errors.Is(err, ucprofile.ErrNoProfile) {
		return middleware.NewAppError(fiber.StatusNotFound, "no profile",
			fiber.Map{"noProfile": msgNoProfile}, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, "internal server error", nil, err)
}
