package models

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/id"
	"gorm.io/gorm"
)

type Organization struct {
	ID               int64     `gorm:"primarykey;autoIncrement:false" json:"id,string"`
	Name             string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug             string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	LogoURL          string    `gorm:"type:varchar(2048);not null;default:''" json:"logo_url"`
	StripeCustomerID *string   `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Relations
	Memberships   []OrganizationMembership `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	InviteLinks   []OrganizationInviteLink `gorm:"foreignKey:OrganizationID" json:"-"`
	Subscriptions []Subscription           `gorm:"foreignKey:OrganizationID" json:"-"`
}

func (o *Organization) BeforeCreate(*gorm.DB) error {
	if o.ID == 0 {
		o.ID = id.New()
	}
	return nil
}
