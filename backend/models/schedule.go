package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	LevelFreshman  = "freshman"
	LevelSophomore = "sophomore"
	LevelJunior    = "junior"
	LevelSenior    = "senior"
)

const AnonymousHandle = "anonymous"

// Event is one weekly meeting of a class. DayOfWeek runs 1 (Mon) to 7 (Sun).
type Event struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location,omitempty"`
	Color     string `json:"color,omitempty"`
}

type Reactions struct {
	Up   int `gorm:"not null;default:0" json:"up"`
	Down int `gorm:"not null;default:0" json:"down"`
}

// Score is the trending rank of a schedule.
func (r Reactions) Score() int {
	return r.Up - r.Down
}

type Schedule struct {
	ID            string                     `gorm:"primaryKey;size:36" json:"id"`
	Title         string                     `json:"title,omitempty"`
	Term          string                     `gorm:"not null" json:"term"`
	Events        datatypes.JSONSlice[Event] `json:"events"`
	CollegeSlug   string                     `gorm:"index;not null" json:"collegeSlug"`
	Major         string                     `gorm:"index;not null" json:"major"`
	Level         string                     `gorm:"index;not null" json:"level"`
	AuthorHandle  string                     `json:"authorHandle,omitempty"`
	UserID        *string                    `gorm:"index;size:36" json:"userId,omitempty"`
	Reactions     Reactions                  `gorm:"embedded;embeddedPrefix:reactions_" json:"reactions"`
	CommentsCount int                        `gorm:"not null;default:0" json:"commentsCount"`
	CreatedAt     time.Time                  `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt             `gorm:"index" json:"deletedAt"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
