package models

import (
	"encoding"
	"errors"
)

// Role is a member's role inside an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// RoleTarget is the value a role change can move a membership to: one of
// the roles, or deactivated.
type RoleTarget string

const (
	RoleTargetOwner       RoleTarget = RoleTarget(RoleOwner)
	RoleTargetAdmin       RoleTarget = RoleTarget(RoleAdmin)
	RoleTargetMember      RoleTarget = RoleTarget(RoleMember)
	RoleTargetDeactivated RoleTarget = "deactivated"
)

// ErrInvalidRole is returned when a role string is not one of the accepted values.
var ErrInvalidRole = errors.New("invalid role")

var (
	_ encoding.TextMarshaler   = Role("")
	_ encoding.TextUnmarshaler = (*Role)(nil)
	_ encoding.TextMarshaler   = RoleTarget("")
	_ encoding.TextUnmarshaler = (*RoleTarget)(nil)
)

// ParseRole parses a role string.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOwner, RoleAdmin, RoleMember:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRoleTarget parses the target of a role change.
func ParseRoleTarget(s string) (RoleTarget, error) {
	if s == string(RoleTargetDeactivated) {
		return RoleTargetDeactivated, nil
	}
	r, err := ParseRole(s)
	if err != nil {
		return "", err
	}
	return RoleTarget(r), nil
}

// Role returns the membership role for the target. ok is false for deactivated.
func (t RoleTarget) Role() (Role, bool) {
	if t == RoleTargetDeactivated {
		return "", false
	}
	return Role(t), true
}

func (t RoleTarget) String() string {
	return string(t)
}

// MarshalText implements encoding.TextMarshaler.
func (t RoleTarget) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RoleTarget) UnmarshalText(text []byte) error {
	parsed, err := ParseRoleTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
