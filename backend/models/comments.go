package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	ScheduleID   string         `gorm:"index;size:36;not null" json:"scheduleId"`
	UserID       string         `gorm:"size:36" json:"userId"`
	AuthorHandle string         `json:"authorHandle"`
	Body         string         `gorm:"not null" json:"body"`
	CreatedAt    time.Time      `json:"createdAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
