// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Ninjabel/SetupCreator/internal/handler"
	"github.com/Ninjabel/SetupCreator/internal/middleware"
	"github.com/Ninjabel/SetupCreator/internal/model"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Part     *handler.PartHandler
	Setup    *handler.SetupHandler
}

// Register mounts all application routes on the provided Echo instance.
// Public catalog reads are wrapped with the cache middleware; mutations
// require a valid access token and, where noted, the ADMIN role. The
// authSecret verifies access tokens on protected groups.
func Register(e *echo.Echo, h Handlers, authSecret string, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// Auth endpoints issue and revoke tokens; none of them require an
	// existing session.
	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/token", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	jwt := middleware.JWTAuth(authSecret)
	admin := middleware.RequireRole(model.RoleAdmin)

	// Category reads are public and cached; mutations are admin only.
	e.GET("/categories", h.Category.List, cache)
	e.GET("/categories/:id", h.Category.Get, cache)
	e.POST("/categories", h.Category.Create, jwt, admin)
	e.DELETE("/categories/:id", h.Category.Delete, jwt, admin)

	// Product reads are public and cached. The bulk update route is
	// registered before /parts/:id so "update" is not parsed as an id.
	e.GET("/parts", h.Part.List, cache)
	e.GET("/parts/:id", h.Part.Get, cache)
	e.POST("/parts/update", h.Part.UpdateAll, jwt, admin)
	e.POST("/parts", h.Part.Create, jwt, admin)
	e.DELETE("/parts/:id", h.Part.Delete, jwt, admin)
	e.POST("/parts/promote/:id", h.Part.Promote, jwt, admin)
	e.POST("/parts/unpromote/:id", h.Part.Unpromote, jwt, admin)

	// Setups belong to whoever is logged in; any authenticated role works.
	setups := e.Group("/setups", jwt, middleware.RequireRole(model.RoleUser, model.RoleAdmin))
	setups.POST("/save", h.Setup.Save)
	setups.DELETE("/delete/:id", h.Setup.Delete)
	setups.GET("", h.Setup.List)
}
