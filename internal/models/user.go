// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	SoftDeleteModel
	Name     string `json:"name" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password string `json:"-" gorm:"size:255;not null"`
	IsAdmin  bool   `json:"isAdmin" gorm:"not null;default:false"`

	// Relationships
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// UserProfile is the outward projection of a User. It is constructed
// explicitly at every boundary so the credential hash can never leak
// through a serializer.
type UserProfile struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func NewUserProfile(u *User) UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}
