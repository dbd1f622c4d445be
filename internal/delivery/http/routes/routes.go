package routes

import (
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/pkg/token"
	"devconnect/internal/repository"
	ucauth "devconnect/internal/usecase/auth"
	ucprofile "devconnect/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

func Register(app *fiber.App, cfg config.Config, db database.DB, cache ucprofile.Cache) {
	if app == nil {
		return
	}

	tokenSvc := token.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(tokenSvc)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)

	authUC := ucauth.NewService(userRepo, tokenSvc)
	profileUC := ucprofile.NewService(profileRepo, cache)

	userHandler := handler.NewUserHandler(authUC, authMw)
	profileHandler := handler.NewProfileHandler(profileUC, authMw)
	postHandler := handler.NewPostHandler()
	healthHandler := handler.NewHealthHandler(db)

	healthHandler.RegisterRoutes(app)

	api := app.Group("/api")
	userHandler.RegisterRoutes(api.Group("/user"))
	profileHandler.RegisterRoutes(api.Group("/profile"))
	postHandler.RegisterRoutes(api.Group("/post"))
}
