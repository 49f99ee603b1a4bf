package repository

import (
	"context"

	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Organizations() OrganizationRepository {
	return NewOrganizationRepository(s.db)
}

func (s *GormStore) Memberships() MembershipRepository {
	return NewMembershipRepository(s.db)
}

func (s *GormStore) InviteLinks() InviteLinkRepository {
	return NewInviteLinkRepository(s.db)
}

func (s *GormStore) Subscriptions() SubscriptionRepository {
	return NewSubscriptionRepository(s.db)
}

// WithTx runs fn inside a database transaction
func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
