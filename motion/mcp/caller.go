package mcp

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viant/mcp-protocol/authorization"
)

const defaultNamespace = "default"

// namespace identifies the caller by the email or subject of the bearer token
// placed in context by the MCP auth middleware. The token is not verified here.
func namespace(ctx context.Context) string {
	var token string
	switch v := ctx.Value(authorization.TokenKey).(type) {
	case string:
		token = v
	case *authorization.Token:
		if v != nil {
			token = v.Token
		}
	}
	if token == "" {
		return defaultNamespace
	}
	var claims jwt.MapClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &claims); err != nil {
		return defaultNamespace
	}
	if email, _ := claims["email"].(string); email != "" {
		return email
	}
	if sub, _ := claims["sub"].(string); sub != "" {
		return sub
	}
	return defaultNamespace
}
