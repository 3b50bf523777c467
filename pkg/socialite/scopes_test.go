package socialite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatScopes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "openid profile email", FormatScopes([]string{"openid", "profile", "email"}, " "))
	assert.Equal(t, "a,b", FormatScopes([]string{"a", "b"}, ","))
	assert.Equal(t, "", FormatScopes(nil, " "))
	assert.Equal(t, "", FormatScopes([]string{}, ","))
	assert.Equal(t, "solo", FormatScopes([]string{"solo"}, " "))
}

func TestSplitScopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		sep  string
		want []string
	}{
		{name: "space separated", in: "a b", sep: " ", want: []string{"a", "b"}},
		{name: "comma separated", in: "repo,user:email", sep: ",", want: []string{"repo", "user:email"}},
		{name: "empty", in: "", sep: " ", want: []string{}},
		{name: "empty fragments dropped", in: "a  b ", sep: " ", want: []string{"a", "b"}},
		{name: "no separator", in: "a b", sep: "", want: []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := splitScopes(tt.in, tt.sep)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeParams(t *testing.T) {
	t.Parallel()

	got := mergeParams(map[string]string{"a": "1", "b": "2"}, map[string]string{"b": "override", "c": "3"})
	assert.Equal(t, map[string]string{"a": "1", "b": "override", "c": "3"}, got)

	assert.Equal(t, map[string]string{"x": "y"}, mergeParams(nil, map[string]string{"x": "y"}))
}

func TestEncodeQuery(t *testing.T) {
	t.Parallel()

	got := encodeQuery(map[string]string{
		"scope":        "openid profile",
		"redirect_uri": "https://app/cb?x=1",
		"client_id":    "cid",
		"empty":        "",
	})
	assert.Equal(t, "client_id=cid&empty=&redirect_uri=https%3A%2F%2Fapp%2Fcb%3Fx%3D1&scope=openid%20profile", got)
	assert.Equal(t, "", encodeQuery(nil))
}

func TestAppendQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://idp/auth?a=1", appendQuery("https://idp/auth", "a=1"))
	assert.Equal(t, "https://idp/auth?x=y&a=1", appendQuery("https://idp/auth?x=y", "a=1"))
	assert.Equal(t, "https://idp/auth?a=1", appendQuery("https://idp/auth?", "a=1"))
	assert.Equal(t, "https://idp/auth?x=y&a=1", appendQuery("https://idp/auth?x=y&", "a=1"))
	assert.Equal(t, "https://idp/auth", appendQuery("https://idp/auth", ""))
}
