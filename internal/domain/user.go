package domain

import "time"

// User is a row of the users table. Password holds the bcrypt hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(191);not null;index" json:"name"`
	Email     string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// TableName pins the table name used by gorm.
func (User) TableName() string {
	return "users"
}
