package models

import "time"

// Employee is a staff member. PasswordHash holds an argon2id hash and is never
// serialized to API responses.
type Employee struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"column:name;size:255;not null" json:"name"`
	Username     string     `gorm:"column:username;size:255;not null;uniqueIndex" json:"username"`
	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	Role         string     `gorm:"column:role;size:50;not null" json:"role"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
}

// GetID implements repo.Entity.
func (e Employee) GetID() int64 { return e.ID }

// TableName overrides the table name used by GORM.
func (Employee) TableName() string { return "employees" }
