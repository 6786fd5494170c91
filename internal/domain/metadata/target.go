package metadata

import (
	"errors"
	"net/url"
	"strings"
)

var errInvalidTarget = errors.New("url must be an absolute http or https URL")

// parseTarget validates the caller supplied URL and returns its canonical form.
func parseTarget(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errInvalidTarget
	}
	if u.Host == "" || u.Hostname() == "" {
		return nil, errInvalidTarget
	}
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u, nil
}

func originOf(u *url.URL) *url.URL {
	return &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
}

func originString(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// resolveAgainstOrigin turns a possibly relative reference into an absolute
// URL rooted at the page origin. It returns "" when the reference cannot be
// parsed.
func resolveAgainstOrigin(ref string, origin *url.URL) string {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	return origin.ResolveReference(parsed).String()
}
