package models

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// Lesson is the minimal lesson record the progress layer needs: enough to
// list, serve flashcards, and attribute answers. Content authoring and
// seeding live outside this service.
type Lesson struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug     string `gorm:"uniqueIndex;not null" json:"slug"`
	Title    string `gorm:"not null" json:"title"`
	Language string `gorm:"index;type:varchar(16)" json:"language"` // BCP 47 tag, e.g. "es", "pt-BR"
	Level    string `gorm:"type:varchar(16);default:'beginner'" json:"level"`

	Flashcards []Flashcard `json:"flashcards,omitempty"`

	Timestamps
}

// Flashcard is one prompt/answer pair inside a lesson.
type Flashcard struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	LessonID string `gorm:"index;not null" json:"lesson_id"`
	Front    string `gorm:"not null" json:"front"`
	Back     string `gorm:"not null" json:"back"`
	XPValue  int64  `json:"xp_value" gorm:"default:10"`

	Timestamps
}

// BeforeCreate fills the slug from the title when the caller didn't set one.
func (l *Lesson) BeforeCreate(_ *gorm.DB) error {
	if l.Slug == "" {
		l.Slug = slug.Make(l.Title)
	}
	return nil
}
