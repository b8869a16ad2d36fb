package post

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	IsDeleted bool      `gorm:"not null;default:false"`
	UserID    string    `gorm:"type:char(36);not null;index"`
	TopicID   uint      `gorm:"not null;index"`
}
