package dto

// LoginForm is submitted to /login
type LoginForm struct {
	Email      string `form:"email" json:"email" validate:"required,email"`
	Password   string `form:"password" json:"password" validate:"required" trim:"-"`
	RedirectTo string `form:"redirectTo" json:"redirectTo"`
}

// RegisterForm is submitted to /register. Token carries an invite link
// accepted right after the account is created.
type RegisterForm struct {
	Email    string `form:"email" json:"email" validate:"required,email,max=255"`
	Password string `form:"password" json:"password" validate:"required,min=8,max=128" trim:"-"`
	Token    string `form:"token" json:"token"`
}

// UserNameForm updates the name during onboarding
type UserNameForm struct {
	Name string `form:"name" json:"name" validate:"required,min=2,max=128"`
}

// AccountForm updates the account settings
type AccountForm struct {
	Name  string `form:"name" json:"name" validate:"required,min=2,max=128"`
	Email string `form:"email" json:"email" validate:"required,email,max=255"`
}

// OrganizationForm creates or renames an organization. LogoURL is nil when
// the field was not submitted.
type OrganizationForm struct {
	Name    string  `form:"name" json:"name" validate:"required,min=3,max=255"`
	LogoURL *string `form:"logoUrl" json:"logoUrl" validate:"omitempty,url,max=2048"`
}

// ChangeRoleTargetForm names the member whose role changes
type ChangeRoleTargetForm struct {
	UserID int64 `form:"userId" json:"userId,string" validate:"required"`
}

// ChangeRoleForm moves a member to a new role or deactivates them
type ChangeRoleForm struct {
	UserID int64  `form:"userId" json:"userId,string" validate:"required"`
	Role   string `form:"role" json:"role" validate:"required,role_target"`
}

// AcceptInviteForm redeems an invite link
type AcceptInviteForm struct {
	Token string `form:"token" json:"token"`
}
