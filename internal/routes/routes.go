package routes

import (
	"net/http"

	"accomform_backend/internal/handlers"
	"accomform_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Setup registers all routes on the engine. The applicant-facing
// workflow lives under /form, the operator surface under /admin.
func Setup(r *gin.Engine, formHandler *handlers.FormHandler, adminHandler *handlers.AdminHandler) {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	form := r.Group("/form")
	{
		form.POST("/initialize", formHandler.Initialize)
		form.POST("/send-verification", formHandler.SendVerification)
		form.POST("/verify-email", formHandler.VerifyEmail)
		form.POST("/submit", formHandler.Submit)
		form.POST("/submit-direct", formHandler.SubmitDirect)
		form.GET("/:submissionId/status", formHandler.Status)
		form.GET("/captcha", formHandler.Captcha)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/submissions", adminHandler.List)
		admin.GET("/submissions/:submissionId", adminHandler.Get)
		admin.DELETE("/submissions/:submissionId", adminHandler.Delete)
		admin.GET("/stats", adminHandler.Statistics)
	}
}
