package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidUserName = errors.New("name cannot be empty")
	ErrSoleOwner       = errors.New("user is the only owner of an organization with other members")
)

// UserService manages the signed-in user's own account.
type UserService struct {
	store repository.Store
}

// NewUserService creates a new UserService.
func NewUserService(store repository.Store) *UserService {
	return &UserService{
		store: store,
	}
}

// UpdateAccountInput holds the account settings. An empty Email keeps the
// current address.
type UpdateAccountInput struct {
	UserID int64
	Name   string
	Email  string
}

// UpdateAccount updates the user's name and email.
func (s *UserService) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidUserName
	}

	var user *models.User
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		user, err = tx.Users().FindByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		if email := NormalizeEmail(input.Email); email != "" && email != user.Email {
			existing, err := tx.Users().FindByEmail(ctx, email)
			if err == nil && existing.ID != user.ID {
				return ErrEmailTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
		user.Name = name

		if err := tx.Users().Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteAccount deletes the user. Organizations where the user is the last
// active member go with them; being the only owner of an organization that
// still has other members blocks the deletion.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		memberships, err := tx.Memberships().ListActiveByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to list organizations: %w", err)
		}

		var solo []int64
		for _, m := range memberships {
			members, err := tx.Memberships().CountActiveMembers(ctx, m.OrganizationID)
			if err != nil {
				return fmt.Errorf("failed to count members: %w", err)
			}
			if members <= 1 {
				solo = append(solo, m.OrganizationID)
				continue
			}
			if m.Role != models.RoleOwner {
				continue
			}

			owners, err := tx.Memberships().CountActiveOwners(ctx, m.OrganizationID)
			if err != nil {
				return fmt.Errorf("failed to count owners: %w", err)
			}
			if owners <= 1 {
				return ErrSoleOwner
			}
		}

		for _, orgID := range solo {
			if err := tx.Organizations().Delete(ctx, orgID); err != nil {
				return fmt.Errorf("failed to delete organization: %w", err)
			}
		}

		if err := tx.Users().Delete(ctx, userID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
