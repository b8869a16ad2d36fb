package comment

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	IsDeleted bool      `gorm:"not null;default:false"`
	UserID    string    `gorm:"type:char(36);not null;index"`
	PostID    uint      `gorm:"not null;index"`
}
