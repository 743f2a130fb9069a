package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL       = errors.New("empty url")
	ErrMissingHost    = errors.New("url has no host")
	ErrUnsupportedURL = errors.New("only http and https urls are supported")
)

// NormalizeTarget cleans up a user-supplied app URL. A schemeless input gets
// defaultScheme, a host name is lowercased and converted to punycode (IP
// literals are left alone) and a default port is dropped. Path, query and
// fragment are kept as given since hosted apps route on them.
func NormalizeTarget(raw, defaultScheme string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrEmptyURL}
	}

	if defaultScheme != "" && !strings.Contains(raw, "://") {
		raw = defaultScheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrUnsupportedURL}
	}
	if u.Host == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrMissingHost}
	}

	host := strings.ToLower(u.Hostname())
	ip := net.ParseIP(host)
	if ip == nil {
		puny, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return "", fmt.Errorf("invalid host %q: %w", host, err)
		}
		host = puny
	}

	port := u.Port()
	switch {
	case (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443"), port == "":
		if ip != nil && strings.Contains(host, ":") {
			u.Host = "[" + host + "]"
		} else {
			u.Host = host
		}
	default:
		u.Host = net.JoinHostPort(host, port)
	}

	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
