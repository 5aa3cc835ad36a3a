package http

import (
	"github.com/gin-gonic/gin"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/service"
)

// SetupRouter sets up the Gin router: the public auth surface and the
// protected API surface with per-endpoint role allow-lists.
func SetupRouter(authService *service.AuthService, apiHandlers *APIHandlers, cookies *CookieCodec) *gin.Engine {
	router := gin.Default()

	authHandlers := NewAuthHandlers(authService, cookies)

	auth := router.Group("/auth")
	{
		auth.GET("/nonce", authHandlers.Nonce)
		auth.POST("/login", authHandlers.Login)
		auth.GET("/session", authHandlers.CurrentSession)
		auth.POST("/refresh", authHandlers.Refresh)
		auth.POST("/logout", authHandlers.Logout)
	}

	anyRole := core.AllowList{core.RoleUsers, core.RoleCreators, core.RoleAdmin}
	creatorsUp := core.AllowList{core.RoleCreators, core.RoleAdmin}
	adminOnly := core.AllowList{core.RoleAdmin}

	api := router.Group("/api")
	api.Use(AuthMiddleware(authService))
	{
		api.GET("/profile", RequireRoles(anyRole), apiHandlers.Profile)
		api.GET("/chat/messages", RequireRoles(anyRole), apiHandlers.ListMessages)
		api.POST("/chat/messages", RequireRoles(anyRole), apiHandlers.PostMessage)
		api.GET("/plans", RequireRoles(anyRole), apiHandlers.ListPlans)
		api.POST("/plans", RequireRoles(creatorsUp), apiHandlers.CreatePlan)
		api.GET("/groups", RequireRoles(adminOnly), apiHandlers.ListGroups)
		api.POST("/groups", RequireRoles(adminOnly), apiHandlers.CreateGroup)
	}

	return router
}
