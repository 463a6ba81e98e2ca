// Package navigation routes plugin invocations to catalog listings,
// playback and the not-in-library fallback.
package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// Action is a routable verb.
type Action string

const (
	ActionListFolders Action = "list_folders"
	ActionListMovies  Action = "list_movies"
	ActionPlay        Action = "play"
	ActionOther       Action = "other_action"
)

// Parameter names used in plugin URLs.
const (
	ParamAction = "action"
	ParamID     = "id"
	ParamTitle  = "title"
)

// Request is one plugin invocation: the plugin's own base URL, the host's
// directory handle and the decoded query parameters.
type Request struct {
	BaseURL string
	Handle  int
	Params  map[string]string
}

// NewRequest decodes a raw paramstring into a Request.
func NewRequest(baseURL string, handle int, paramstring string) (Request, error) {
	params, err := ParseQuery(paramstring)
	if err != nil {
		return Request{}, err
	}
	return Request{BaseURL: baseURL, Handle: handle, Params: params}, nil
}

// URL builds a plugin URL that routes back to this plugin. Keys are sorted.
func (r Request) URL(params map[string]string) string {
	v := make(url.Values, len(params))
	for k, val := range params {
		v.Set(k, val)
	}
	return r.BaseURL + "?" + v.Encode()
}

// Param returns a parameter value and whether it was present.
func (r Request) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	return v, ok
}

// ParseQuery decodes a paramstring such as "?action=play&id=3". Only the
// first value of a repeated key is kept.
func ParseQuery(raw string) (map[string]string, error) {
	raw = strings.TrimPrefix(raw, "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse query %q: %w", raw, err)
	}
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	return params, nil
}
