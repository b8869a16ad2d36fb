package user

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Password  string    `gorm:"not null"`
	Roles     string    `gorm:"type:varchar(255);not null"` // comma separated
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u *User) RoleList() []string {
	if u.Roles == "" {
		return nil
	}
	return strings.Split(u.Roles, ",")
}

func (u *User) SetRoles(roles []string) {
	u.Roles = strings.Join(roles, ",")
}
