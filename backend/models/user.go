package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Handle    string    `gorm:"not null" json:"handle"`
	HandleKey string    `gorm:"uniqueIndex;not null" json:"-"` // lower-cased handle
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"default:USER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.HandleKey = HandleKey(u.Handle)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// HandleKey normalizes a handle for uniqueness checks and lookups.
func HandleKey(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStats aggregates the reactions and comments on a user's live schedules.
type UserStats struct {
	SchedulesCount int `json:"schedulesCount"`
	TotalReactions int `json:"totalReactions"`
	TotalUpvotes   int `json:"totalUpvotes"`
	TotalComments  int `json:"totalComments"`
}

func NewUserStats(schedules []Schedule) UserStats {
	stats := UserStats{SchedulesCount: len(schedules)}
	for _, s := range schedules {
		stats.TotalReactions += s.Reactions.Up + s.Reactions.Down
		stats.TotalUpvotes += s.Reactions.Up
		stats.TotalComments += s.CommentsCount
	}
	return stats
}
