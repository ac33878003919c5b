// Package auth provides token providers for the GitHub scraper.
package auth

import (
	"context"
	"os"
	"strings"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
)

// DefaultTokenEnv is the environment variable read by EnvTokenProvider.
const DefaultTokenEnv = "GITHUB_TOKEN"

// Ensure the providers implement the TokenProvider interface.
var (
	_ driven.TokenProvider = (*PATProvider)(nil)
	_ driven.TokenProvider = (*EnvTokenProvider)(nil)
)

// PATProvider serves a fixed Personal Access Token.
// PATs don't expire and don't require refresh.
type PATProvider struct {
	token string
}

// NewPATProvider creates a provider for token.
func NewPATProvider(token string) *PATProvider {
	return &PATProvider{token: strings.TrimSpace(token)}
}

// GetToken returns the token or domain.ErrMissingToken if it is empty.
func (p *PATProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrMissingToken
	}
	return p.token, nil
}

// IsAuthenticated returns true if a token is set.
func (p *PATProvider) IsAuthenticated() bool {
	return p.token != ""
}

// EnvTokenProvider reads the token from an environment variable on each call.
type EnvTokenProvider struct {
	name   string
	lookup func(string) (string, bool)
}

// NewEnvTokenProvider creates a provider for the named variable.
// An empty name means DefaultTokenEnv.
func NewEnvTokenProvider(name string) *EnvTokenProvider {
	if name == "" {
		name = DefaultTokenEnv
	}
	return &EnvTokenProvider{name: name, lookup: os.LookupEnv}
}

// Name returns the environment variable name.
func (p *EnvTokenProvider) Name() string {
	return p.name
}

// GetToken returns the variable's value or domain.ErrMissingToken.
func (p *EnvTokenProvider) GetToken(ctx context.Context) (string, error) {
	v, _ := p.lookup(p.name)
	return NewPATProvider(v).GetToken(ctx)
}

// IsAuthenticated returns true if the variable holds a non-blank value.
func (p *EnvTokenProvider) IsAuthenticated() bool {
	v, _ := p.lookup(p.name)
	return strings.TrimSpace(v) != ""
}
