package models

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/id"
	"gorm.io/gorm"
)

type User struct {
	ID           int64     `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(128);not null;default:''" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships []OrganizationMembership `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == 0 {
		u.ID = id.New()
	}
	return nil
}

// HasCompletedProfile reports whether the user finished the account onboarding step.
func (u *User) HasCompletedProfile() bool {
	return u.Name != ""
}
