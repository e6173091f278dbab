package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetList fetches a collection. The backend has returned collections as bare
// JSON arrays, wrapped in an object under "data" or an entity-specific key,
// and as a "data" object holding the entity key; keys lists the
// entity-specific keys to accept, in order of preference after "data".
func GetList[T any](ctx context.Context, c *Client, path string, keys ...string) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](body, keys...)
}

func decodeList[T any](body []byte, keys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		return decodeArray[T](trimmed, "")
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, key := range append([]string{"data"}, keys...) {
		raw, ok := env[key]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if key == "data" && len(inner) > 0 && inner[0] == '{' {
			// {"data":{"<entity>":[...]}}
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(inner, &nested); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
			}
			for _, nkey := range keys {
				if nraw, ok := nested[nkey]; ok {
					return decodeArray[T](nraw, nkey)
				}
			}
			continue
		}
		return decodeArray[T](inner, key)
	}

	return nil, fmt.Errorf("%w: no recognized collection key", ErrMalformedResponse)
}

func decodeArray[T any](raw []byte, key string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		if key == "" {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("%w: %q is not a collection: %v", ErrMalformedResponse, key, err)
	}
	return items, nil
}
