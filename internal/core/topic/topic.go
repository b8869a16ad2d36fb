package topic

import "time"

type Topic struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(400);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	IsDeleted   bool      `gorm:"not null;default:false"`
	UserID      string    `gorm:"type:char(36);not null;index"` // immutable after creation
}
