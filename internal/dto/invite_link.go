package dto

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/models"
)

// InviteLinkDTO represents an invite link shown to owners
type InviteLinkDTO struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// InvitationDTO is what an invitee sees before accepting
type InvitationDTO struct {
	Token            string    `json:"token"`
	OrganizationName string    `json:"organization_name"`
	OrganizationSlug string    `json:"organization_slug"`
	InviterName      string    `json:"inviter_name"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// ToInviteLinkDTO converts an invite link to DTO. baseURL prefixes the
// public accept URL.
func ToInviteLinkDTO(link models.OrganizationInviteLink, baseURL string) InviteLinkDTO {
	return InviteLinkDTO{
		Token:     link.Token,
		URL:       baseURL + "/organizations/invite-link?token=" + link.Token,
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}

// ToInvitationDTO converts a link with preloaded organization and creator
func ToInvitationDTO(link models.OrganizationInviteLink) InvitationDTO {
	return InvitationDTO{
		Token:            link.Token,
		OrganizationName: link.Organization.Name,
		OrganizationSlug: link.Organization.Slug,
		InviterName:      link.Creator.Name,
		ExpiresAt:        link.ExpiresAt,
	}
}
