package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Args holds `name: value` pairs given to a driver action.
type Args map[string]any

// Pick returns the subset of args named in names.
func (a Args) Pick(names ...string) map[string]any {
	picked := make(map[string]any, len(names))
	for _, name := range names {
		if v, ok := a[name]; ok {
			picked[name] = v
		}
	}
	return picked
}

func ParseArgs(args ...string) (Args, error) {
	parsed := make(Args, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("argument %q must follow the `name: value` pattern", arg)
		}
		parsed[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return parsed, nil
}

// Driver talks to a running server over HTTP. Every action returns the raw
// response body.
type Driver struct {
	BaseURL string
	Client  *http.Client
}

func (d *Driver) CreateAPost(args ...string) (string, error) {
	parsed, err := ParseArgs(args...)
	if err != nil {
		return "", err
	}
	requiredArgs := parsed.Pick("title", "content")
	if len(requiredArgs) != 2 {
		return "", fmt.Errorf("missing required args")
	}
	return d.send(http.MethodPost, "/posts", requiredArgs)
}

func (d *Driver) ListPosts(args ...string) (string, error) {
	parsed, err := ParseArgs(args...)
	if err != nil {
		return "", err
	}
	return d.send(http.MethodGet, "/posts"+queryString(parsed.Pick("sort", "direction")), nil)
}

func (d *Driver) SearchPosts(args ...string) (string, error) {
	parsed, err := ParseArgs(args...)
	if err != nil {
		return "", err
	}
	return d.send(http.MethodGet, "/posts/search"+queryString(parsed.Pick("title", "content")), nil)
}

func (d *Driver) EditAPost(id string, args ...string) (string, error) {
	parsed, err := ParseArgs(args...)
	if err != nil {
		return "", err
	}
	return d.send(http.MethodPut, "/posts/"+url.PathEscape(id), parsed.Pick("title", "content"))
}

func (d *Driver) DeleteAPost(id string) (string, error) {
	return d.send(http.MethodDelete, "/posts/"+url.PathEscape(id), nil)
}

func queryString(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	q := url.Values{}
	for k, v := range args {
		q.Set(k, fmt.Sprint(v))
	}
	return "?" + q.Encode()
}

func (d *Driver) send(method, path string, payload any) (string, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return "", err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, d.BaseURL+path, body)
	if err != nil {
		return "", err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := d.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
