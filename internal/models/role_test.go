package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoleTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    RoleTarget
		wantErr bool
	}{
		{in: "owner", want: RoleTargetOwner},
		{in: "admin", want: RoleTargetAdmin},
		{in: "member", want: RoleTargetMember},
		{in: "deactivated", want: RoleTargetDeactivated},
		{in: "Owner", wantErr: true},
		{in: "", wantErr: true},
		{in: "superuser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRoleTarget(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRoleTarget_Role(t *testing.T) {
	role, ok := RoleTargetAdmin.Role()
	require.True(t, ok)
	require.Equal(t, RoleAdmin, role)

	_, ok = RoleTargetDeactivated.Role()
	require.False(t, ok)
}

func TestRole_UnmarshalText(t *testing.T) {
	var r Role
	require.NoError(t, r.UnmarshalText([]byte("member")))
	require.Equal(t, RoleMember, r)
	require.ErrorIs(t, r.UnmarshalText([]byte("deactivated")), ErrInvalidRole)
}

func TestParseIntent(t *testing.T) {
	i, err := ParseIntent("createNewInviteLink")
	require.NoError(t, err)
	require.Equal(t, IntentCreateNewInviteLink, i)

	_, err = ParseIntent("CREATE")
	require.ErrorIs(t, err, ErrInvalidIntent)
}
