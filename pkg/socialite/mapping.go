package socialite

import (
	"encoding/json"
	"strconv"
)

// FieldSetter writes one raw value into a User field.
type FieldSetter func(u *User, v string)

// Setters for every mappable User field.
var (
	ToID             FieldSetter = func(u *User, v string) { u.ID = v }
	ToNickname       FieldSetter = func(u *User, v string) { u.Nickname = &v }
	ToName           FieldSetter = func(u *User, v string) { u.Name = &v }
	ToEmail          FieldSetter = func(u *User, v string) { u.Email = &v }
	ToAvatar         FieldSetter = func(u *User, v string) { u.Avatar = &v }
	ToAvatarOriginal FieldSetter = func(u *User, v string) { u.AvatarOriginal = &v }
	ToProfileURL     FieldSetter = func(u *User, v string) { u.ProfileURL = &v }
)

// FieldRule maps a raw payload key onto a User field.
type FieldRule struct {
	Key string
	Set FieldSetter
}

// FieldMapping is a provider's raw-payload-to-User table. A key may appear
// in more than one rule.
type FieldMapping []FieldRule

// MapRawToUser applies mapping to raw. Keys missing from raw, and values
// that are null or not scalars, leave the field absent. The payload is
// kept on the result as-is. The ID may come back empty; providers reject
// such a user.
func MapRawToUser(raw map[string]any, mapping FieldMapping) *User {
	u := &User{Raw: raw}
	if u.Raw == nil {
		u.Raw = map[string]any{}
	}
	for _, rule := range mapping {
		if rule.Set == nil {
			continue
		}
		v, ok := scalarString(raw[rule.Key])
		if !ok {
			continue
		}
		rule.Set(u, v)
	}
	return u
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}
