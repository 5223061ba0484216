package models

import "gorm.io/gorm"

const RoleAdmin = "admin"

// User is a dashboard operator. Customers never sign in.
type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role"`
}
