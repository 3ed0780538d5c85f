package auth

import (
	"encoding/base64"
	"strings"
)

const basicPrefix = "Basic "

// ParseBasicAuth decodes an Authorization header. The password may itself contain colons.
func ParseBasicAuth(header string) (username, password string, err error) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", "", ErrMissingCredentials
	}
	decoded, errDecode := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(basicPrefix):]))
	if errDecode != nil {
		return "", "", ErrInvalidFormat
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" || password == "" {
		return "", "", ErrInvalidFormat
	}
	return username, password, nil
}

// BasicAuthHeader encodes credentials as an Authorization header value.
func BasicAuthHeader(username, password string) string {
	return basicPrefix + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}
