package models

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

type User struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	DisplayName string   `json:"displayName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Role        []string `json:"role,omitempty"`
}

// Label picks the best human-readable name for u.
func (u User) Label() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}

type AuthResponse struct {
	User   *User  `json:"user"`
	Tokens Tokens `json:"tokens"`
}
