// Package model contains the GORM persistence models, kept separate from the
// pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v4().
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Username       string    `gorm:"type:varchar(100);unique;not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	SIWAIdentifier *string   `gorm:"column:siwa_identifier;type:varchar(255);unique"`
	ProfilePicture *string   `gorm:"type:varchar(255)"`
	TwitterURL     *string   `gorm:"column:twitter_url;type:varchar(255)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Acronyms []AcronymModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tokens   []TokenModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
