package v1

import (
	"log"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/notification"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Register wires the full v1 surface: public browse and catalogue routes,
// the authenticated swap lifecycle, and the admin group behind the stored
// admin flag.
func Register(r fiber.Router, cfg config.Config, db database.DB, redis *cache.Redis, hub *ws.Hub, logger *log.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(db)
	profileRepo := repository.NewPostgresProfileRepository(db)
	skillRepo := repository.NewPostgresSkillRepository(db)
	userSkillRepo := repository.NewPostgresUserSkillRepository(db)
	swapRepo := repository.NewPostgresSwapRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	adminRepo := repository.NewPostgresAdminRepository(db)

	relay := notification.NewHubRelay(hub, logger)

	var c usecase.Cache
	if redis != nil {
		c = redis
	}

	authUC := usecase.NewAuthUsecase(db, userRepo, profileRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(profileRepo, userSkillRepo, c)
	skillUC := usecase.NewSkillUsecase(skillRepo, c)
	userSkillUC := usecase.NewUserSkillUsecase(skillRepo, userSkillRepo, c)
	swapUC := usecase.NewSwapUsecase(swapRepo, skillRepo, userSkillRepo, profileRepo, relay)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, swapRepo, relay, logger)
	adminUC := usecase.NewAdminUsecase(profileRepo, adminRepo, c)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	swapHandler := handler.NewSwapHandler(swapUC)
	ratingHandler := handler.NewRatingHandler(ratingUC)
	messageHandler := handler.NewMessageHandler(adminUC)
	adminHandler := handler.NewAdminHandler(adminUC)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	adminMw := middleware.NewAdminMiddleware(profileRepo)

	authHandler.RegisterRoutes(r.Group("/auth"))

	userHandler.RegisterPublicRoutes(r)
	ratingHandler.RegisterPublicRoutes(r)
	skillHandler.RegisterRoutes(r)
	messageHandler.RegisterRoutes(r)

	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterRoutes(protected)
	userSkillHandler.RegisterRoutes(protected)
	swapHandler.RegisterRoutes(protected)
	ratingHandler.RegisterRoutes(protected)

	wsHandler := ws.NewHandler(hub, logger)
	protected.Get("/ws", wsHandler.HandleFeed)

	admin := protected.Group("/admin", adminMw.Middleware())
	adminHandler.RegisterRoutes(admin)
}
