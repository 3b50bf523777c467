package socialite

import "slices"

// User is the normalized identity returned by a provider.
//
// Optional profile fields are nil when the provider did not supply them;
// an empty string is a value the provider actually sent.
type User struct {
	ID             string
	Nickname       *string
	Name           *string
	Email          *string
	Avatar         *string
	AvatarOriginal *string
	ProfileURL     *string

	Token          string
	RefreshToken   string
	ExpiresIn      int
	ApprovedScopes []string

	// Raw is the provider payload as received, for fields outside the
	// common model.
	Raw map[string]any
}

func (u *User) GetNickname() string       { return deref(u.Nickname) }
func (u *User) GetName() string           { return deref(u.Name) }
func (u *User) GetEmail() string          { return deref(u.Email) }
func (u *User) GetAvatar() string         { return deref(u.Avatar) }
func (u *User) GetAvatarOriginal() string { return deref(u.AvatarOriginal) }
func (u *User) GetProfileURL() string     { return deref(u.ProfileURL) }

// setToken copies the token exchange result onto the user.
func (u *User) setToken(t *Token) {
	u.Token = t.AccessToken
	u.RefreshToken = t.RefreshToken
	u.ExpiresIn = t.ExpiresIn
	u.ApprovedScopes = slices.Clone(t.ApprovedScopes)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
