package gotrue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"car-collection/internal/platform/httpclient"
	"car-collection/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUnauthorized  = errors.New("gotrue unauthorized")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue (el servidor de auth estilo Supabase).
type Config struct {
	BaseURL     string
	RedirectURL string // a dónde vuelve el browser después del proveedor
	Provider    string // proveedor OAuth externo: google, github, etc.
	Timeout     time.Duration
}

// Client implementa auth.Provider contra un GoTrue. Maneja el flujo de
// redirect OAuth: armar la URL de authorize, canjear el código del
// callback y revocar el token en sign-out.
type Client struct {
	http        *httpclient.Client
	baseURL     string
	redirectURL string
	provider    string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}

	provider := strings.TrimSpace(cfg.Provider)
	if provider == "" {
		provider = "google"
	}

	return &Client{
		http:        hc,
		baseURL:     base,
		redirectURL: strings.TrimSpace(cfg.RedirectURL),
		provider:    provider,
	}, nil
}

var _ auth.Provider = (*Client)(nil)

// AuthorizeURL arma la URL de redirect al proveedor. El state viaja de
// ida y vuelta para correlacionar el callback con la sesión pendiente.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("provider", c.provider)
	q.Set("state", state)
	if c.redirectURL != "" {
		q.Set("redirect_to", c.redirectURL)
	}
	return c.baseURL + "/authorize?" + q.Encode()
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	User        struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			FullName string `json:"full_name"`
			Name     string `json:"name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

// Exchange canjea el código del callback por token + identidad.
func (c *Client) Exchange(ctx context.Context, code string) (auth.Claims, auth.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return auth.Claims{}, auth.Token{}, ErrUnauthorized
	}

	var out exchangeResponse
	err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=authorization_code", nil,
		map[string]string{"auth_code": code}, &out)
	if err != nil {
		return auth.Claims{}, auth.Token{}, normalizeErr(err)
	}

	userID := strings.TrimSpace(out.User.ID)
	if userID == "" || out.AccessToken == "" {
		return auth.Claims{}, auth.Token{}, fmt.Errorf("%w: response missing user or token", ErrUpstream)
	}

	name := strings.TrimSpace(out.User.UserMetadata.FullName)
	if name == "" {
		name = strings.TrimSpace(out.User.UserMetadata.Name)
	}

	claims := auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(out.User.Email),
		Name:   name,
	}
	token := auth.Token{
		AccessToken: out.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}
	return claims, token, nil
}

// Revoke invalida el token en el proveedor. Un intento, sin retry.
func (c *Client) Revoke(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}

	headers := map[string]string{"Authorization": "Bearer " + accessToken}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/logout", headers, nil, nil); err != nil {
		return normalizeErr(err)
	}
	return nil
}

func normalizeErr(err error) error {
	if httpclient.IsStatus(err, http.StatusUnauthorized) || httpclient.IsStatus(err, http.StatusForbidden) {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
