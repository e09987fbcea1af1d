// handlers/lessons.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"lingo-learn-system/middleware"
	"lingo-learn-system/services"
)

func SetupLessonRoutes(app *fiber.App, lessonService *services.LessonService) {
	// 🔓 Public reads — *no user context*, but still behind Gateway auth
	app.Get("/lessons", lessonService.GetAllLessons)
	app.Get("/lessons/:id", lessonService.GetLessonByID)

	// 🔐 Mutation guards are attached per route: a prefix-"/" group would
	// register them as global middleware and gate every route added after
	// this setup runs, not just these two.
	app.Post("/lessons",
		middleware.UserContextMiddleware(), middleware.RequireRole("admin"),
		lessonService.CreateLesson)
	app.Delete("/lessons/:id",
		middleware.UserContextMiddleware(), middleware.RequireRole("admin"),
		lessonService.DeleteLesson)
}
