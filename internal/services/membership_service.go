package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrMemberNotFound      = errors.New("organization member not found")
	ErrInvalidRole         = models.ErrInvalidRole
)

// MembershipService manages roles inside an organization.
type MembershipService struct {
	store repository.Store
	now   clock
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(store repository.Store) *MembershipService {
	return &MembershipService{
		store: store,
		now:   utcNow,
	}
}

// ChangeRoleInput describes a role transition requested by UserID for
// TargetUserID. NewRole is a role or "deactivated".
type ChangeRoleInput struct {
	OrganizationID int64
	UserID         int64
	TargetUserID   int64
	NewRole        string
}

// ChangeRole moves a member to a new role or deactivates them. Only owners
// may do this, never on themselves.
func (s *MembershipService) ChangeRole(ctx context.Context, input ChangeRoleInput) (*models.OrganizationMembership, error) {
	var target *models.OrganizationMembership

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		caller, err := findActiveMembership(ctx, tx, input.OrganizationID, input.UserID)
		if err != nil {
			return err
		}
		if !caller.IsOwner() {
			return ErrNotOwner
		}
		if input.UserID == input.TargetUserID {
			return ErrCannotChangeOwnRole
		}

		newRole, err := models.ParseRoleTarget(input.NewRole)
		if err != nil {
			return ErrInvalidRole
		}

		target, err = tx.Memberships().Find(ctx, input.OrganizationID, input.TargetUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return fmt.Errorf("failed to find organization member: %w", err)
		}

		// The caller is an active owner other than the target, so demoting
		// the target always leaves an owner behind.
		if role, ok := newRole.Role(); ok {
			target.Role = role
			target.DeactivatedAt = nil
		} else if target.DeactivatedAt == nil {
			now := s.now()
			target.DeactivatedAt = &now
		}

		if err := tx.Memberships().Update(ctx, target); err != nil {
			return fmt.Errorf("failed to update organization member: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return target, nil
}

// ListMembers returns every member of an organization, deactivated ones
// included, in join order.
func (s *MembershipService) ListMembers(ctx context.Context, organizationID int64) ([]models.OrganizationMembership, error) {
	members, err := s.store.Memberships().ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization members: %w", err)
	}
	return members, nil
}
