package request

import "strings"

const (
	ClientTypeWeb    = "web"
	ClientTypeMobile = "mobile"
)

// ResolveClientType decides the client kind from the explicit header,
// falling back to a user-agent sniff for browsers.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientTypeWeb:
		return ClientTypeWeb
	case ClientTypeMobile:
		return ClientTypeMobile
	}

	if strings.Contains(userAgent, "Mozilla") {
		return ClientTypeWeb
	}
	return ClientTypeMobile
}

func IsWebClient(clientType string) bool {
	return clientType == ClientTypeWeb
}
