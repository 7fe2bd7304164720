package auth

import (
	"github.com/devlink/desktop/internal/json"
)

// Result is the decoded body of a successful response, kept verbatim. The
// DevLink backend answers with an object, but any JSON value is passed on
// unchanged; the accessors below return zero values when Body is not an object.
type Result struct {
	Body interface{}
}

// NewResult wraps a decoded JSON value.
func NewResult(body interface{}) Result {
	return Result{Body: body}
}

// User mirrors the user object the DevLink backend nests under data.user.
type User struct {
	ID       int
	Username string
	Email    string
}

// Object returns Body as a JSON object. ok is false for arrays, scalars and null.
func (r Result) Object() (map[string]interface{}, bool) {
	obj, ok := r.Body.(map[string]interface{})
	return obj, ok
}

// MarshalJSON encodes Body exactly as it was received.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Body)
}

// Message returns the top-level "message" field, if it is a string.
func (r Result) Message() string {
	obj, _ := r.Object()
	s, _ := obj["message"].(string)
	return s
}

// Token looks for a token at the top level first, then under "data".
func (r Result) Token() string {
	obj, _ := r.Object()
	if s, ok := obj["token"].(string); ok {
		return s
	}
	s, _ := r.data()["token"].(string)
	return s
}

// User reads data.user. ok is false when the payload carries no user object.
func (r Result) User() (User, bool) {
	raw, ok := r.data()["user"].(map[string]interface{})
	if !ok {
		return User{}, false
	}

	var u User
	if id, ok := raw["id"].(float64); ok {
		u.ID = int(id)
	}
	u.Username, _ = raw["username"].(string)
	u.Email, _ = raw["email"].(string)
	return u, true
}

func (r Result) data() map[string]interface{} {
	obj, _ := r.Object()
	d, _ := obj["data"].(map[string]interface{})
	return d
}
