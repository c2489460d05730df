package models

// User mirrors the profile returned by /auth/profile.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `json:"isActive"`
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// Apply shallow-merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthSession is either anonymous (User nil, Token empty) or authenticated.
type AuthSession struct {
	User            *User  `json:"user"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

func AnonymousSession() AuthSession {
	return AuthSession{}
}

func AuthenticatedSession(user User, token string) AuthSession {
	return AuthSession{User: &user, Token: token, IsAuthenticated: true}
}
