package routes

import (
	"gradi/server/internal/handlers"
	"gradi/server/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	// API v1 group
	api := app.Group("/api/v1")

	// Health check (public)
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Gradi API is running",
		})
	})

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.StrictRateLimiter(), handlers.Register)
	auth.Post("/login", middleware.StrictRateLimiter(), handlers.Login)
	auth.Post("/refresh", middleware.StrictRateLimiter(), handlers.RefreshToken)
	auth.Post("/logout", middleware.AuthMiddleware, handlers.Logout)
	auth.Get("/me", middleware.AuthMiddleware, handlers.GetMe)
	auth.Get("/google", handlers.GoogleOAuthURL)
	auth.Get("/google/callback", handlers.GoogleOAuthCallback)

	// Profile routes
	profiles := api.Group("/profiles")
	profiles.Get("/:userId", handlers.GetProfile)
	profiles.Put("/me", middleware.AuthMiddleware, handlers.UpdateProfile)
	profiles.Put("/me/password", middleware.AuthMiddleware, handlers.SetPassword)

	// Feed routes: reads are public with an optional viewer identity,
	// writes require auth
	posts := api.Group("/posts")
	posts.Get("/", middleware.OptionalAuthMiddleware, handlers.GetFeed)
	posts.Post("/", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.CreatePost)
	posts.Delete("/comments/:commentId", middleware.AuthMiddleware, handlers.DeleteComment)
	posts.Delete("/:postId", middleware.AuthMiddleware, handlers.DeletePost)
	posts.Post("/:postId/like", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.ToggleLike)
	posts.Get("/:postId/comments", middleware.OptionalAuthMiddleware, handlers.GetComments)
	posts.Post("/:postId/comments", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.CreateComment)

	// Task marketplace routes
	tasks := api.Group("/tasks")
	tasks.Get("/", handlers.GetTasks)
	tasks.Get("/:taskId", handlers.GetTaskDetails)
	tasks.Post("/", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.CreateTask)
	tasks.Patch("/:taskId/status", middleware.AuthMiddleware, handlers.UpdateTaskStatus)
	tasks.Delete("/:taskId", middleware.AuthMiddleware, handlers.DeleteTask)

	// Group routes: the directory is public so anonymous viewers see the
	// sign-in affordance; membership mutations require auth
	groups := api.Group("/groups")
	groups.Get("/", middleware.OptionalAuthMiddleware, handlers.GetGroups)
	groups.Get("/:groupId", middleware.OptionalAuthMiddleware, handlers.GetGroupDetails)
	groups.Post("/", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.CreateGroup)
	groups.Put("/:groupId", middleware.AuthMiddleware, handlers.UpdateGroup)
	groups.Delete("/:groupId", middleware.AuthMiddleware, handlers.DeleteGroup)
	groups.Post("/:groupId/join", middleware.AuthMiddleware, middleware.ModerateRateLimiter(), handlers.JoinGroup)
	groups.Post("/:groupId/leave", middleware.AuthMiddleware, handlers.LeaveGroup)
	groups.Get("/:groupId/members", middleware.AuthMiddleware, handlers.GetGroupMembers)
	groups.Get("/:groupId/requests", middleware.AuthMiddleware, handlers.GetJoinRequests)
	groups.Post("/:groupId/requests/:userId/approve", middleware.AuthMiddleware, handlers.ApproveRequest)
	groups.Delete("/:groupId/requests/:userId", middleware.AuthMiddleware, handlers.RejectRequest)
	groups.Get("/:groupId/posts", middleware.AuthMiddleware, handlers.GetGroupFeed)

	// Upload routes (protected)
	uploads := api.Group("/upload", middleware.AuthMiddleware)
	uploads.Post("/:bucket", middleware.UploadRateLimiter(), handlers.UploadFile)

	// Serve uploaded files (public)
	app.Get("/uploads/:bucket/:filename", handlers.GetFile)
}
