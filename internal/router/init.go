package router

import (
	"github.com/nareswara/libris/internal/application"
	"github.com/nareswara/libris/internal/container"
	pginfra "github.com/nareswara/libris/internal/infrastructure/postgres"
	handlers "github.com/nareswara/libris/internal/interface/http"
	"github.com/nareswara/libris/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	auditRepo := pginfra.NewAuditRepository(pool)

	userRepo := pginfra.NewUserRepository(pool)
	authSvc := application.NewAuthService(userRepo, jwt, logger)
	authHandler := handlers.NewAuthHandler(authSvc, auditRepo, logger)

	bookRepo := pginfra.NewBookRepository(pool)
	catalogSvc := application.NewCatalogService(bookRepo, logger)
	bookHandler := handlers.NewBookHandler(catalogSvc, auditRepo, logger)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool)))
	r.Add(modules.NewAuthModule(authHandler, jwt))
	r.Add(modules.NewBookModule(bookHandler, jwt))
}
