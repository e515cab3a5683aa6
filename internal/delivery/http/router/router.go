// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"catalog/internal/delivery/http/middleware"
	"catalog/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	AcronymHandler  *handler.AcronymHandler
	CategoryHandler *handler.CategoryHandler
	OAuthHandler    *handler.OAuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	acronymHandler  *handler.AcronymHandler
	categoryHandler *handler.CategoryHandler
	oauthHandler    *handler.OAuthHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		acronymHandler:  params.AcronymHandler,
		categoryHandler: params.CategoryHandler,
		oauthHandler:    params.OAuthHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Browser-facing OAuth routes. The iOS variants mark the client type so
	// the callback knows where to send the token.
	e.GET("/login-google", r.oauthHandler.GoogleLogin)
	e.GET("/login-github", r.oauthHandler.GitHubLogin)
	e.GET("/iOS/login-google", r.oauthHandler.GoogleLoginIOS)
	e.GET("/iOS/login-github", r.oauthHandler.GitHubLoginIOS)
	e.GET("/oauth/google/callback", r.oauthHandler.GoogleCallback)
	e.GET("/oauth/github/callback", r.oauthHandler.GitHubCallback)

	api := e.Group("/api")

	// Acronym routes. Reads are public; writes require a bearer token.
	acronyms := api.Group("/acronyms")
	{
		acronyms.GET("", r.acronymHandler.List)
		acronyms.GET("/search", r.acronymHandler.Search)
		acronyms.GET("/sorted", r.acronymHandler.Sorted)
		acronyms.GET("/first", r.acronymHandler.First)
		acronyms.GET("/:id", r.acronymHandler.Get)
		acronyms.GET("/:id/user", r.acronymHandler.GetUser)
		acronyms.GET("/:id/categories", r.acronymHandler.ListCategories)

		guarded := acronyms.Group("", r.authMiddleware.Authenticate)
		guarded.POST("", r.acronymHandler.Create)
		guarded.PUT("/:id", r.acronymHandler.Update)
		guarded.DELETE("/:id", r.acronymHandler.Delete)
		guarded.POST("/:id/categories/:categoryID", r.acronymHandler.AttachCategory)
		guarded.DELETE("/:id/categories/:categoryID", r.acronymHandler.DetachCategory)
	}

	// Category routes.
	categories := api.Group("/categories")
	{
		categories.POST("", r.categoryHandler.Create)
		categories.GET("", r.categoryHandler.List)
		categories.GET("/:id", r.categoryHandler.Get)
		categories.GET("/:id/acronyms", r.categoryHandler.ListAcronyms)
		categories.DELETE("/:id", r.categoryHandler.Delete)
	}

	// User routes.
	users := api.Group("/users")
	{
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.POST("/siwa", r.userHandler.SignInWithApple)
		users.GET("", r.userHandler.ListUsers)
		users.GET("/:id", r.userHandler.GetUser)
		users.GET("/:id/acronyms", r.userHandler.ListAcronyms)
		users.GET("/:id/profilePicture", r.userHandler.GetProfilePicture)
		users.DELETE("/:id", r.userHandler.DeleteUser)
		users.POST("/profilePicture", r.userHandler.UploadProfilePicture, r.authMiddleware.Authenticate)
	}

	// Versioned user responses.
	api.GET("/v2/users/:id", r.userHandler.GetUserV2)
}
