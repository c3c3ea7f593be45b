package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// Account holds the credentials side of a user, stored in PostgreSQL.
// The display side lives in the MongoDB profile document referenced by
// ProfileID (hex ObjectID).
type Account struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Password   string `json:"-"` // bcrypt hash, never serialized
	ProfileID  string `json:"profile_id" gorm:"uniqueIndex"`
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Bio      string `json:"bio,omitempty" validate:"omitempty,max=160"`
}

// LoginRequest defines the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
