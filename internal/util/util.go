package util

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// WritablePath returns the cleaned WRITABLE_PATH environment variable when it is set.
// Log files and the default SQLite database are placed under it.
func WritablePath() string {
	for _, key := range []string{"WRITABLE_PATH", "writable_path"} {
		if value, ok := os.LookupEnv(key); ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return filepath.Clean(trimmed)
			}
		}
	}
	return ""
}

// HideSecret obscures a secret for logging, showing only the first and last few characters.
func HideSecret(secret string) string {
	if len(secret) > 8 {
		return secret[:4] + "..." + secret[len(secret)-4:]
	} else if len(secret) > 4 {
		return secret[:2] + "..." + secret[len(secret)-2:]
	} else if len(secret) > 2 {
		return secret[:1] + "..." + secret[len(secret)-1:]
	}
	return secret
}

// MaskSensitiveQuery masks credential-like query parameters within the raw query string.
func MaskSensitiveQuery(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "&")
	changed := false
	for i, part := range parts {
		if part == "" {
			continue
		}
		keyPart := part
		valuePart := ""
		if idx := strings.Index(part, "="); idx >= 0 {
			keyPart = part[:idx]
			valuePart = part[idx+1:]
		}
		decodedKey, err := url.QueryUnescape(keyPart)
		if err != nil {
			decodedKey = keyPart
		}
		if !shouldMaskQueryParam(decodedKey) {
			continue
		}
		decodedValue, err := url.QueryUnescape(valuePart)
		if err != nil {
			decodedValue = valuePart
		}
		parts[i] = keyPart + "=" + url.QueryEscape(HideSecret(strings.TrimSpace(decodedValue)))
		changed = true
	}
	if !changed {
		return raw
	}
	return strings.Join(parts, "&")
}

func shouldMaskQueryParam(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	key = strings.TrimSuffix(key, "[]")
	for _, marker := range []string{"pass", "token", "secret", "auth", "key"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

var (
	schemePattern     = regexp.MustCompile(`(?i)^https?://`)
	bareDomainPattern = regexp.MustCompile(`(?i)^(www\.|[\w-]+\.)`)
	webAddressPattern = regexp.MustCompile(`(?i)^(https?://)?([\w-]+\.)+[\w-]+(/.*)?$`)
	angleBrackets     = regexp.MustCompile(`[<>]`)
	jsScheme          = regexp.MustCompile(`(?i)javascript:`)
	eventHandler      = regexp.MustCompile(`(?i)on\w+=`)
)

// NormalizeURL adds https:// to bare domains such as "www.example.com". Other input is returned trimmed.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if schemePattern.MatchString(trimmed) {
		return trimmed
	}
	if bareDomainPattern.MatchString(trimmed) {
		return "https://" + trimmed
	}
	return trimmed
}

// IsWebAddress reports whether raw is empty, an absolute URL, or a bare domain with an optional path.
func IsWebAddress(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return true
	}
	return webAddressPattern.MatchString(trimmed)
}

// SanitizeInput strips markup and script vectors from free text.
func SanitizeInput(input string) string {
	out := angleBrackets.ReplaceAllString(input, "")
	out = jsScheme.ReplaceAllString(out, "")
	out = eventHandler.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}
