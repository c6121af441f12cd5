package backend

import (
	"context"
	"net/http"
)

// Token is the credential pair issued by the login and refresh endpoints.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type platformAdminLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tenantLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPlatformAdmin exchanges platform-operator credentials for a token
// pair and installs them on sess. The call carries no bearer token, so a
// 401 surfaces as a plain *APIError rather than a refresh attempt.
func (c *Client) LoginPlatformAdmin(ctx context.Context, sess *Session, username, password string) error {
	var tok Token
	in := platformAdminLogin{Username: username, Password: password}
	if err := c.call(ctx, nil, "login_platform_admin", http.MethodPost, "/auth/platform-admin/login", nil, in, &tok); err != nil {
		return err
	}
	sess.install(tok.AccessToken, tok.RefreshToken, PrincipalPlatformAdmin)
	return nil
}

// LoginTenant exchanges tenant-admin credentials for a token pair and
// installs them on sess.
func (c *Client) LoginTenant(ctx context.Context, sess *Session, email, password string) error {
	var tok Token
	in := tenantLogin{Email: email, Password: password}
	if err := c.call(ctx, nil, "login_tenant", http.MethodPost, "/auth/tenant/login", nil, in, &tok); err != nil {
		return err
	}
	sess.install(tok.AccessToken, tok.RefreshToken, PrincipalTenant)
	return nil
}
