package routes

import (
	"liftakids-api/controllers"
	"liftakids-api/middleware"
	"liftakids-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication & registration
			public.POST("/login", controllers.Login)
			public.POST("/donors/register", controllers.RegisterDonor)
			public.POST("/institutions/register", controllers.RegisterInstitution)

			// Area hierarchy, fetched per parent to cascade selectors
			public.GET("/divisions", controllers.GetDivisions)
			public.GET("/districts", controllers.GetDistricts)
			public.GET("/thanas", controllers.GetThanas)
			public.GET("/unions", controllers.GetUnions)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Lift A Kids API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Session snapshot
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Notifications
			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			protected.PUT("/notifications/read-all", controllers.MarkAllNotificationsRead)

			// Students
			students := protected.Group("/students")
			{
				students.GET("", controllers.GetStudents)
				students.GET("/search", controllers.SearchStudents)
				students.GET("/:id", controllers.GetStudent)
				students.GET("/:id/paid-months", controllers.GetStudentPaidMonths)

				// Institutions and admins manage rosters
				students.POST("", middleware.RequireAccountType(models.AccountTypeInstitution, models.AccountTypeAdmin), controllers.CreateStudent)
				students.PUT("/:id", middleware.RequireAccountType(models.AccountTypeInstitution, models.AccountTypeAdmin), controllers.UpdateStudent)
				students.DELETE("/:id", middleware.RequireAccountType(models.AccountTypeInstitution, models.AccountTypeAdmin), controllers.DeleteStudent)
				students.POST("/:id/photo", middleware.RequireAccountType(models.AccountTypeInstitution, models.AccountTypeAdmin), controllers.UploadStudentPhoto)

				// Sponsor button state, donor view
				students.GET("/:id/sponsor-status", middleware.RequireAccountType(models.AccountTypeDonor), controllers.GetStudentSponsorStatus)
			}

			// Donors
			donors := protected.Group("/donors")
			{
				donors.GET("/search", controllers.SearchDonors)
				donors.GET("", middleware.RequireAccountType(models.AccountTypeAdmin), controllers.GetDonors)
				donors.GET("/:id", controllers.GetDonor)
				donors.PUT("/:id", controllers.UpdateDonor)
				donors.DELETE("/:id", middleware.RequireAccountType(models.AccountTypeAdmin), controllers.DeleteDonor)
			}

			// Institutions
			institutions := protected.Group("/institutions")
			{
				institutions.GET("", controllers.GetInstitutions)
				institutions.GET("/:id", controllers.GetInstitution)
				institutions.PUT("/:id", controllers.UpdateInstitution)
				institutions.POST("/:id/approve", middleware.RequireAccountType(models.AccountTypeAdmin), controllers.ApproveInstitution)
				institutions.DELETE("/:id", middleware.RequireAccountType(models.AccountTypeAdmin), controllers.DeleteInstitution)
			}

			// Admin accounts
			admins := protected.Group("/admins")
			admins.Use(middleware.RequireAccountType(models.AccountTypeAdmin))
			{
				admins.GET("", controllers.GetAdmins)
				admins.POST("", controllers.CreateAdmin)
				admins.PUT("/:id", controllers.UpdateAdmin)
				admins.DELETE("/:id", controllers.DeleteAdmin)
			}

			// Area management (admin only)
			areas := protected.Group("")
			areas.Use(middleware.RequireAccountType(models.AccountTypeAdmin))
			{
				areas.POST("/divisions", controllers.CreateDivision)
				areas.DELETE("/divisions/:id", controllers.DeleteDivision)
				areas.POST("/districts", controllers.CreateDistrict)
				areas.POST("/thanas", controllers.CreateThana)
				areas.POST("/unions", controllers.CreateUnion)
			}

			// Sponsorships & payments
			sponsorships := protected.Group("/sponsorships")
			{
				sponsorships.POST("", middleware.RequireAccountType(models.AccountTypeDonor), controllers.CreateSponsorship)
				sponsorships.GET("", controllers.GetSponsorships)
				sponsorships.GET("/:id", controllers.GetSponsorship)
				sponsorships.GET("/donor/:id", controllers.GetDonorSponsorships)
				sponsorships.GET("/student/:id", controllers.GetStudentSponsorships)
				sponsorships.POST("/:id/payment", middleware.RequireAccountType(models.AccountTypeDonor), controllers.SubmitPayment)
				sponsorships.GET("/:id/payments", controllers.GetSponsorshipPayments)
			}

			// Dashboard
			dashboard := protected.Group("/dashboard")
			dashboard.Use(middleware.RequireAccountType(models.AccountTypeAdmin))
			{
				dashboard.GET("/stats", controllers.GetDashboardStats)
			}
		}
	}
}
