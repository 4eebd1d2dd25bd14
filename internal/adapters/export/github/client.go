package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"car-collection/internal/platform/httpclient"
	"car-collection/internal/ports/export"
)

const defaultBaseURL = "https://api.github.com"

// Config del publisher de export (API de contents estilo GitHub).
type Config struct {
	BaseURL string // default api.github.com; inyectable para tests
	Token   string
	Repo    string // owner/name
	Branch  string
	Timeout time.Duration
}

// Publisher sube el JSON de un car como cars/<external_code>.json al
// repo configurado. Create-or-update: la API exige el sha del archivo
// existente para pisarlo, así que primero se consulta y después se hace
// el PUT. Un intento, sin retry.
type Publisher struct {
	http   *httpclient.Client
	token  string
	repo   string
	branch string
}

func NewPublisher(cfg Config) (*Publisher, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("export token is empty")
	}
	repo := strings.TrimSpace(cfg.Repo)
	if !strings.Contains(repo, "/") {
		return nil, fmt.Errorf("export repo must be owner/name, got %q", repo)
	}

	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	hc, err := httpclient.NewWithBaseURL(base, timeout)
	if err != nil {
		return nil, err
	}

	branch := strings.TrimSpace(cfg.Branch)
	if branch == "" {
		branch = "main"
	}

	return &Publisher{
		http:   hc,
		token:  strings.TrimSpace(cfg.Token),
		repo:   repo,
		branch: branch,
	}, nil
}

var _ export.Publisher = (*Publisher)(nil)

type contentsResponse struct {
	SHA string `json:"sha"`
}

type putContentsRequest struct {
	Message string `json:"message"`
	Content string `json:"content"` // base64
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"` // requerido para update
}

func (p *Publisher) Publish(ctx context.Context, externalCode string, payload []byte, message string) error {
	externalCode = strings.TrimSpace(externalCode)
	if externalCode == "" {
		return fmt.Errorf("%w: empty external code", export.ErrUpstream)
	}

	path := fmt.Sprintf("/repos/%s/contents/cars/%s.json", p.repo, externalCode)
	headers := map[string]string{
		"Authorization":        "Bearer " + p.token,
		"X-GitHub-Api-Version": "2022-11-28",
	}

	// Probe del sha actual; 404 significa create.
	var current contentsResponse
	sha := ""
	err := p.http.DoJSON(ctx, http.MethodGet, path+"?ref="+p.branch, headers, nil, &current)
	switch {
	case err == nil:
		sha = current.SHA
	case httpclient.IsStatus(err, http.StatusNotFound):
		// archivo nuevo
	default:
		return fmt.Errorf("%w: read current file: %v", export.ErrUpstream, err)
	}

	req := putContentsRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(payload),
		Branch:  p.branch,
		SHA:     sha,
	}
	if err := p.http.DoJSON(ctx, http.MethodPut, path, headers, req, nil); err != nil {
		return fmt.Errorf("%w: put file: %v", export.ErrUpstream, err)
	}
	return nil
}
