package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/selin/campushub/internal/app/controllers"
	"github.com/selin/campushub/internal/app/models"
	"github.com/selin/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	noteController *controllers.NoteController,
	jobController *controllers.JobController,
	bookmarkController *controllers.BookmarkController,
	adminController *controllers.AdminController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Public browse routes ---
	// Optional auth: anonymous callers browse the approved/open views, an
	// admin token unlocks the unrestricted job listing.
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/notes", noteController.GetAllNotes)
		public.GET("/notes/:id", noteController.GetNoteByID)
		public.POST("/notes/:id/download", noteController.Download)
		public.GET("/jobs", jobController.GetAllJobs)
		public.GET("/jobs/:id", jobController.GetJobByID)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

	{
		// Profile routes
		authenticated.GET("/auth/me", authController.Me)
		authenticated.PUT("/auth/profile", authController.UpdateProfile)

		// Note routes
		notes := authenticated.Group("/notes")
		{
			notes.GET("/user/my-notes", noteController.GetMyNotes)
			notes.POST("", noteController.CreateNote)
			notes.PUT("/:id", noteController.UpdateNote)
			notes.DELETE("/:id", noteController.DeleteNote)
		}

		// Job routes
		jobs := authenticated.Group("/jobs")
		{
			jobs.GET("/user/my-applications", jobController.GetMyApplications)
			jobs.POST("/:id/apply", jobController.Apply)

			// Admin-only job management
			jobsAdmin := jobs.Group("")
			jobsAdmin.Use(adminOnly)
			{
				jobsAdmin.POST("", jobController.CreateJob)
				jobsAdmin.PUT("/:id", jobController.UpdateJob)
				jobsAdmin.DELETE("/:id", jobController.DeleteJob)
				jobsAdmin.GET("/:id/applications", jobController.GetJobApplicants)
				jobsAdmin.PATCH("/applications/:applicationId", jobController.UpdateApplicationStatus)
			}
		}

		// Bookmark routes
		bookmarks := authenticated.Group("/bookmarks")
		{
			bookmarks.GET("", bookmarkController.GetMyBookmarks)
			bookmarks.POST("/:noteId", bookmarkController.AddBookmark)
			bookmarks.DELETE("/:noteId", bookmarkController.RemoveBookmark)
			bookmarks.GET("/check/:noteId", bookmarkController.CheckBookmark)
		}

		// Admin routes
		admin := authenticated.Group("/admin")
		admin.Use(adminOnly)
		{
			admin.GET("/stats", adminController.GetStats)
			admin.GET("/users", adminController.GetAllUsers)
			admin.PATCH("/users/:id/active", adminController.SetUserActive)
			admin.DELETE("/users/:id", adminController.DeleteUser)
			admin.GET("/notes", adminController.GetAllNotes)
			admin.DELETE("/notes/:id", noteController.DeleteNote)
		}
	}
}
