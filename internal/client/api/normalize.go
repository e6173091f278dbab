package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/vkuzmenko/classmate/internal/client/models"
	"github.com/vkuzmenko/classmate/internal/logging"
)

// wireUser is the loosely-typed user object as it appears on the wire.
// Weak decoding tolerates numeric ids.
type wireUser struct {
	ID        string `mapstructure:"id"`
	Name      string `mapstructure:"name"`
	Email     string `mapstructure:"email"`
	Role      string `mapstructure:"role"`
	StudentID string `mapstructure:"studentId"`
}

// NormalizeLogin reduces the login response to one canonical (user, token)
// pair. Historically the endpoint has produced at least these shapes:
//
//	{token, user: {...}}
//	{token, data: {...}}
//	{token, name, email, role, ...}   (user fields flattened at the root)
//
// A response without a token, or without a user object carrying at least a
// name or an email, is rejected with ErrMalformedResponse. An unknown role
// string is logged and degraded to the least-privileged role.
func NormalizeLogin(ctx context.Context, body []byte, log logging.Logger) (models.User, string, error) {
	var root map[string]any
	if err := json.Unmarshal(body, &root); err != nil {
		return models.User{}, "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	token, _ := root["token"].(string)
	if token == "" {
		return models.User{}, "", fmt.Errorf("%w: login response carries no token", ErrMalformedResponse)
	}

	for _, candidate := range []any{root["user"], root["data"], root} {
		m, ok := candidate.(map[string]any)
		if !ok {
			continue
		}
		wu, ok := decodeWireUser(m)
		if !ok {
			continue
		}

		role, known := models.ParseRole(wu.Role)
		if !known {
			log.Warn(ctx, "unknown role in login response, defaulting to student", "role", wu.Role)
		}
		user := models.User{
			ID:        wu.ID,
			Name:      wu.Name,
			Email:     wu.Email,
			Role:      role,
			StudentID: wu.StudentID,
		}
		return user, token, nil
	}

	return models.User{}, "", fmt.Errorf("%w: login response carries no user object", ErrMalformedResponse)
}

func decodeWireUser(m map[string]any) (wireUser, bool) {
	// tolerate the Mongo-style identifier key
	if _, ok := m["id"]; !ok {
		if v, ok := m["_id"]; ok {
			m = cloneWith(m, "id", v)
		}
	}

	var wu wireUser
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &wu,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return wireUser{}, false
	}
	if err := dec.Decode(m); err != nil {
		return wireUser{}, false
	}
	if wu.Name == "" && wu.Email == "" {
		return wireUser{}, false
	}
	return wu, true
}

func cloneWith(m map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
