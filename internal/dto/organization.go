package dto

import (
	"time"

	"github.com/yukikurage/saas-starter-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID      int64  `json:"id,string"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logo_url,omitempty"`
}

// OrganizationWithRoleDTO represents an organization with the user's role
type OrganizationWithRoleDTO struct {
	OrganizationDTO
	Role models.Role `json:"role"`
}

// OrganizationMemberDTO represents a member on the team page
type OrganizationMemberDTO struct {
	User          UserDTO           `json:"user"`
	Role          models.RoleTarget `json:"role"`
	DeactivatedAt *time.Time        `json:"deactivated_at,omitempty"`
	JoinedAt      time.Time         `json:"joined_at"`
}

// DashboardDTO is the payload of an organization's dashboard
type DashboardDTO struct {
	Organization OrganizationDTO `json:"organization"`
	YourRole     models.Role     `json:"your_role"`
	Notices      []string        `json:"notices,omitempty"`
}

// TeamMembersDTO is the payload of the team members settings page
type TeamMembersDTO struct {
	Organization OrganizationDTO         `json:"organization"`
	YourRole     models.Role             `json:"your_role"`
	Members      []OrganizationMemberDTO `json:"members"`
	InviteLink   *InviteLinkDTO          `json:"invite_link,omitempty"`
}

// ToOrganizationDTO converts an organization model to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:      org.ID,
		Name:    org.Name,
		Slug:    org.Slug,
		LogoURL: org.LogoURL,
	}
}

// ToOrganizationWithRoleDTO converts a membership to DTO with role
func ToOrganizationWithRoleDTO(membership models.OrganizationMembership) OrganizationWithRoleDTO {
	return OrganizationWithRoleDTO{
		OrganizationDTO: ToOrganizationDTO(membership.Organization),
		Role:            membership.Role,
	}
}

// ToOrganizationMemberDTO converts a membership to DTO
func ToOrganizationMemberDTO(membership models.OrganizationMembership) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		User:          ToUserDTO(membership.User),
		Role:          membership.EffectiveRole(),
		DeactivatedAt: membership.DeactivatedAt,
		JoinedAt:      membership.CreatedAt,
	}
}

// ToOrganizationMemberDTOs converts a list of memberships to DTOs
func ToOrganizationMemberDTOs(memberships []models.OrganizationMembership) []OrganizationMemberDTO {
	members := make([]OrganizationMemberDTO, len(memberships))
	for i, m := range memberships {
		members[i] = ToOrganizationMemberDTO(m)
	}
	return members
}
