// Package routes wires the HTTP handlers onto the gin router.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajoapp/backend/internal/auth"
	"github.com/ajoapp/backend/internal/handlers"
	"github.com/ajoapp/backend/internal/middleware"
)

// Setup registers all routes. Reads on groups are public; everything
// that acts as a member requires a valid token.
func Setup(r *gin.Engine, authHandler *handlers.AuthHandler, groupHandler *handlers.GroupHandler, escrowHandler *handlers.EscrowHandler, jwtManager *auth.JWTManager) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	groups := v1.Group("/groups")
	{
		// Public reads.
		groups.GET("/:id", groupHandler.GetGroup)
		groups.GET("/:id/status", groupHandler.GetStatus)
		groups.GET("/:id/members", groupHandler.ListMembers)
		groups.GET("/:id/contributions", groupHandler.ListContributions)
		groups.GET("/:id/payouts", groupHandler.ListPayouts)
		groups.GET("/:id/metadata", groupHandler.GetMetadata)

		// Member actions.
		authed := groups.Group("")
		authed.Use(middleware.AuthRequired(jwtManager))
		{
			authed.POST("", groupHandler.CreateGroup)
			authed.POST("/:id/join", groupHandler.JoinGroup)
			authed.POST("/:id/contribute", groupHandler.Contribute)
			authed.POST("/:id/payout", groupHandler.ExecutePayout)
			authed.POST("/:id/cancel", groupHandler.CancelGroup)
			authed.PUT("/:id/metadata", groupHandler.SetMetadata)
		}
	}

	escrowRoutes := v1.Group("/escrow")
	escrowRoutes.Use(middleware.AuthRequired(jwtManager))
	{
		escrowRoutes.POST("/deposit", escrowHandler.Deposit)
		escrowRoutes.GET("/balance", escrowHandler.Balance)
	}
}
