package gourdianauth

import "strings"

// BearerScheme is the token scheme carried in the Authorization header and in
// TokenPair.GrantType.
const BearerScheme = "Bearer"

const bearerPrefix = BearerScheme + " "

// ExtractBearerToken strips the Bearer scheme prefix from a raw Authorization
// header value. It returns the bare token and true, or "" and false when the
// header is absent, carries a different scheme, or has no token after the
// prefix.
func ExtractBearerToken(headerValue string) (string, bool) {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return "", false
	}
	token := headerValue[len(bearerPrefix):]
	if strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}
