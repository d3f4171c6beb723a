package auth

import (
	"liga-api/packages/auth/handlers"
	"liga-api/packages/auth/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Module struct {
	Handler *handlers.AuthHandler
}

func NewModule(db *gorm.DB) *Module {
	return &Module{
		Handler: handlers.NewAuthHandler(db),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", m.Handler.Register)
		auth.POST("/login", m.Handler.Login)
		auth.GET("/me", middleware.JWTMiddleware(), m.Handler.Profile)
		auth.POST("/change-password", middleware.JWTMiddleware(), m.Handler.ChangePassword)
	}
}

func JWTMiddleware() gin.HandlerFunc {
	return middleware.JWTMiddleware()
}

func GetUserID(c *gin.Context) (uint, bool) {
	return middleware.GetUserID(c)
}

func GetUserEmail(c *gin.Context) (string, bool) {
	return middleware.GetUserEmail(c)
}

func RequireRole(db *gorm.DB, role string) gin.HandlerFunc {
	return middleware.RequireRole(db, role)
}

func RequireAnyRole(db *gorm.DB, roles ...string) gin.HandlerFunc {
	return middleware.RequireAnyRole(db, roles...)
}
