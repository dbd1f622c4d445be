package handler

import "github.com/gofiber/fiber/v3"

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

func (h *PostHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/test", h.Test)
}

func (h *PostHandler) Test(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Posts working"})
}
