package socialite

import "golang.org/x/oauth2"

// Google endpoints.
const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL    = "https://www.googleapis.com/oauth2/v4/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
)

// GoogleDescriptor describes Google's OpenID Connect user-info flow.
func GoogleDescriptor() Descriptor {
	return Descriptor{
		Name: "google",
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
		UserInfoURL:    googleUserInfoURL,
		DefaultScopes:  []string{"openid", "profile", "email"},
		ScopeSeparator: " ",
		Mapping: FieldMapping{
			{Key: "sub", Set: ToID},
			{Key: "nickname", Set: ToNickname},
			{Key: "name", Set: ToName},
			{Key: "email", Set: ToEmail},
			{Key: "picture", Set: ToAvatar},
			{Key: "picture", Set: ToAvatarOriginal},
		},
	}
}
