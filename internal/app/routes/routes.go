package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Adoxcol/uniplanfinal/internal/app/controllers"
	"github.com/Adoxcol/uniplanfinal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	planController *controllers.PlanController,
	plannerController *controllers.PlannerController,
	profileController *controllers.ProfileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Public plan browsing ---
	publicPlans := v1.Group("/public-plans")
	{
		publicPlans.GET("", planController.ListPublicPlans)
		publicPlans.GET("/:id", planController.GetPublicPlan)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		profile := authenticated.Group("/profile")
		{
			profile.GET("", profileController.GetProfile)
			profile.PUT("", profileController.UpdateProfile)
		}

		plans := authenticated.Group("/plans")
		{
			plans.POST("", planController.CreatePlan)
			plans.GET("", planController.ListPlans)
			plans.GET("/:id", planController.GetPlan)
			plans.PATCH("/:id", planController.RenamePlan)
			plans.PUT("/:id/visibility", planController.SetVisibility)
			plans.DELETE("/:id", planController.DeletePlan)
			plans.POST("/:id/duplicate", planController.DuplicatePlan)

			// Editing session: edits stay in the working copy until save
			session := plans.Group("/:id/session")
			{
				session.POST("", plannerController.OpenSession)
				session.GET("", plannerController.GetSnapshot)
				session.DELETE("", plannerController.CloseSession)
				session.POST("/semesters", plannerController.AddSemester)
				session.PUT("/courses", plannerController.CommitCourse)
				session.DELETE("/courses/:courseId", plannerController.DeleteCourse)
				session.POST("/notes", plannerController.AddNote)
				session.DELETE("/notes/:index", plannerController.RemoveNote)
				session.PUT("/visibility", plannerController.SetVisibility)
				session.POST("/save", plannerController.Save)
			}
		}
	}
}
