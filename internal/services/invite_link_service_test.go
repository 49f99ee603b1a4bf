package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"gorm.io/gorm"
)

type InviteLinkServiceSuite struct {
	suite.Suite

	ctx   context.Context
	db    *gorm.DB
	store repository.Store
	svc   *InviteLinkService
	team  teamFixture
}

func TestInviteLinkServiceSuite(t *testing.T) {
	suite.Run(t, new(InviteLinkServiceSuite))
}

func (s *InviteLinkServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store, s.db = setupTestStore(s.T())
	s.svc = NewInviteLinkService(s.store)
	s.team = setupTeam(s.T(), s.store)
}

func (s *InviteLinkServiceSuite) createLink() *models.OrganizationInviteLink {
	link, err := s.svc.CreateInviteLink(s.ctx, CreateInviteLinkInput{
		OrganizationID: s.team.org.ID,
		CreatorID:      s.team.owner.ID,
	})
	s.Require().NoError(err)
	return link
}

func (s *InviteLinkServiceSuite) TestCreateInviteLinkReplacesActiveLink() {
	first := s.createLink()
	s.WithinDuration(time.Now().Add(constants.InviteLinkLifetime), first.ExpiresAt, time.Minute)
	s.Len(first.Token, 43)

	second := s.createLink()
	s.NotEqual(first.Token, second.Token)

	var old models.OrganizationInviteLink
	s.Require().NoError(s.db.First(&old, first.ID).Error)
	s.NotNil(old.DeactivatedAt)

	var active int64
	s.Require().NoError(s.db.Model(&models.OrganizationInviteLink{}).
		Where("organization_id = ? AND deactivated_at IS NULL", s.team.org.ID).
		Count(&active).Error)
	s.EqualValues(1, active)

	current, err := s.svc.GetActiveInviteLink(s.ctx, s.team.org.ID)
	s.Require().NoError(err)
	s.Equal(second.ID, current.ID)
}

func (s *InviteLinkServiceSuite) TestNonOwnersCannotManageLinks() {
	for _, user := range []*models.User{s.team.admin, s.team.member} {
		_, err := s.svc.CreateInviteLink(s.ctx, CreateInviteLinkInput{OrganizationID: s.team.org.ID, CreatorID: user.ID})
		s.ErrorIs(err, ErrNotOwner)

		err = s.svc.DeactivateInviteLink(s.ctx, DeactivateInviteLinkInput{OrganizationID: s.team.org.ID, CallerID: user.ID})
		s.ErrorIs(err, ErrNotOwner)
	}
}

func (s *InviteLinkServiceSuite) TestDeactivateInviteLinkIsIdempotent() {
	s.createLink()

	input := DeactivateInviteLinkInput{OrganizationID: s.team.org.ID, CallerID: s.team.owner.ID}
	s.Require().NoError(s.svc.DeactivateInviteLink(s.ctx, input))
	s.Require().NoError(s.svc.DeactivateInviteLink(s.ctx, input))

	_, err := s.svc.GetActiveInviteLink(s.ctx, s.team.org.ID)
	s.ErrorIs(err, ErrNoActiveInviteLink)
}

func (s *InviteLinkServiceSuite) TestValidateToken() {
	link := s.createLink()

	found, err := s.svc.ValidateToken(s.ctx, link.Token)
	s.Require().NoError(err)
	s.Equal("Acme", found.Organization.Name)
	s.Equal(s.team.owner.Name, found.Creator.Name)

	_, err = s.svc.ValidateToken(s.ctx, "")
	s.ErrorIs(err, ErrInvalidToken)

	_, err = s.svc.ValidateToken(s.ctx, "unknown")
	s.ErrorIs(err, ErrInvalidToken)

	// Expired
	s.svc.now = func() time.Time { return link.ExpiresAt.Add(time.Second) }
	_, err = s.svc.ValidateToken(s.ctx, link.Token)
	s.ErrorIs(err, ErrInvalidToken)
	s.svc.now = utcNow

	// Deactivated
	s.Require().NoError(s.svc.DeactivateInviteLink(s.ctx, DeactivateInviteLinkInput{
		OrganizationID: s.team.org.ID, CallerID: s.team.owner.ID,
	}))
	_, err = s.svc.ValidateToken(s.ctx, link.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *InviteLinkServiceSuite) TestAcceptInvite() {
	link := s.createLink()
	newcomer := createTestUser(s.T(), s.store, "newcomer@example.com")

	result, err := s.svc.AcceptInvite(s.ctx, AcceptInviteInput{Token: link.Token, UserID: newcomer.ID})
	s.Require().NoError(err)
	s.False(result.AlreadyMember)
	s.Equal(s.team.org.Slug, result.Organization.Slug)
	s.Equal(models.RoleMember, membershipOf(s.T(), s.store, s.team.org.ID, newcomer.ID).Role)

	// Second acceptance changes nothing
	result, err = s.svc.AcceptInvite(s.ctx, AcceptInviteInput{Token: link.Token, UserID: newcomer.ID})
	s.Require().NoError(err)
	s.True(result.AlreadyMember)

	uses, err := s.store.InviteLinks().CountUses(s.ctx, link.ID)
	s.Require().NoError(err)
	s.EqualValues(1, uses)
	s.Equal(models.RoleMember, membershipOf(s.T(), s.store, s.team.org.ID, newcomer.ID).Role)
}

func (s *InviteLinkServiceSuite) TestAcceptInviteKeepsExistingRoles() {
	link := s.createLink()

	result, err := s.svc.AcceptInvite(s.ctx, AcceptInviteInput{Token: link.Token, UserID: s.team.admin.ID})
	s.Require().NoError(err)
	s.True(result.AlreadyMember)
	s.Equal(models.RoleAdmin, membershipOf(s.T(), s.store, s.team.org.ID, s.team.admin.ID).Role)

	// Deactivated members are not reactivated by a link
	_, err = NewMembershipService(s.store).ChangeRole(s.ctx, ChangeRoleInput{
		OrganizationID: s.team.org.ID, UserID: s.team.owner.ID, TargetUserID: s.team.member.ID, NewRole: "deactivated",
	})
	s.Require().NoError(err)

	result, err = s.svc.AcceptInvite(s.ctx, AcceptInviteInput{Token: link.Token, UserID: s.team.member.ID})
	s.Require().NoError(err)
	s.True(result.AlreadyMember)
	s.NotNil(membershipOf(s.T(), s.store, s.team.org.ID, s.team.member.ID).DeactivatedAt)

	uses, err := s.store.InviteLinks().CountUses(s.ctx, link.ID)
	s.Require().NoError(err)
	s.Zero(uses)
}

func (s *InviteLinkServiceSuite) TestAcceptInviteWithInvalidToken() {
	newcomer := createTestUser(s.T(), s.store, "newcomer@example.com")

	_, err := s.svc.AcceptInvite(s.ctx, AcceptInviteInput{Token: "nope", UserID: newcomer.ID})
	s.ErrorIs(err, ErrInvalidToken)

	_, err = s.store.Memberships().Find(s.ctx, s.team.org.ID, newcomer.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}
