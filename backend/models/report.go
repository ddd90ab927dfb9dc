package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TargetSchedule = "schedule"
	TargetComment  = "comment"

	ReportOpen     = "open"
	ReportResolved = "resolved"

	ResolveClose        = "close"
	ResolveDeleteTarget = "delete-target"
)

type Report struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	TargetType string `gorm:"not null" json:"targetType"`
	TargetID   string `gorm:"size:36;not null" json:"targetId"`
	// ScheduleID is the schedule the target belongs to; empty if the target is gone.
	ScheduleID string    `gorm:"index;size:36" json:"scheduleId"`
	Reason     string    `gorm:"not null" json:"reason"`
	Status     string    `gorm:"index;not null;default:open" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReportOpen
	}
	return nil
}
