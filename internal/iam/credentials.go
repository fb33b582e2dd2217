package iam

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeCredentials returns base64("clientID:secret") over the UTF-8 bytes
func EncodeCredentials(clientID, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(clientID + ":" + secret))
}

// DecodeCredentials reverses EncodeCredentials. The string is split at the
// first colon, so client ids must not contain one.
func DecodeCredentials(encoded string) (clientID, secret string, err error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", fmt.Errorf("invalid credential encoding: %w", err)
	}

	clientID, secret, ok := strings.Cut(string(raw), ":")
	if !ok {
		return "", "", fmt.Errorf("invalid credential: missing ':' separator")
	}
	return clientID, secret, nil
}
