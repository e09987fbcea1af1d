package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"lingo-learn-system/models"
)

type LessonService struct {
	DB *gorm.DB
}

func NewLessonService(db *gorm.DB) *LessonService {
	return &LessonService{DB: db}
}

// MinimalLesson struct for lightweight listing
type MinimalLesson struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Language string `json:"language"`
	Level    string `json:"level"`
}

// GetAllLessons lists lessons, optionally filtered by language and a title
// search term.
func (s *LessonService) GetAllLessons(c *fiber.Ctx) error {
	limitStr := c.Query("limit", "50")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.Lesson{}).Limit(limit)

	if lang := c.Query("language", ""); lang != "" {
		db = db.Where("language = ?", lang)
	}
	if q := c.Query("q", ""); q != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
		db = db.Where("LOWER(title) LIKE ?", searchTerm)
	}

	var lessons []MinimalLesson
	if err := db.Find(&lessons).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "lesson listing failed", "cause": err.Error()})
	}
	return c.JSON(lessons)
}

// GetLessonByID returns one lesson with its flashcards.
func (s *LessonService) GetLessonByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var lesson models.Lesson
	err := s.DB.Preload("Flashcards").Where("id = ? OR slug = ?", id, id).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lesson not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error fetching lesson", "cause": err.Error()})
	}
	return c.JSON(lesson)
}

// CreateLesson registers a new lesson shell plus flashcards. Content
// authoring/seeding is upstream; this endpoint only accepts the finished
// records.
func (s *LessonService) CreateLesson(c *fiber.Ctx) error {
	var lesson models.Lesson
	if err := c.BodyParser(&lesson); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
	}
	if lesson.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
	}

	lesson.ID = uuid.NewString()
	for i := range lesson.Flashcards {
		lesson.Flashcards[i].ID = uuid.NewString()
		lesson.Flashcards[i].LessonID = lesson.ID
	}

	if err := s.DB.Create(&lesson).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create lesson", "cause": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// DeleteLesson soft-deletes a lesson and its flashcards.
func (s *LessonService) DeleteLesson(c *fiber.Ctx) error {
	id := c.Params("id")

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", id).Delete(&models.Flashcard{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Lesson{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "lesson not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete lesson", "cause": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "lesson deleted", "id": id})
}
