package httputil

import (
	"errors"
	"net/http"
	"strings"
)

var ErrNoToken = errors.New("no bearer token in request")

// BearerToken extracts the token from "Authorization: Bearer <token>".
// A bare header value without the scheme is accepted too.
func BearerToken(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", ErrNoToken
	}
	if scheme, rest, ok := strings.Cut(authHeader, " "); ok && strings.EqualFold(scheme, "Bearer") {
		authHeader = strings.TrimSpace(rest)
	} else if strings.EqualFold(authHeader, "Bearer") {
		authHeader = ""
	}
	if authHeader == "" {
		return "", ErrNoToken
	}
	return authHeader, nil
}
