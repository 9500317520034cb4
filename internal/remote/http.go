package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stillwater-app/stillwater/internal/common"
)

// TokenProvider supplies the current access token for remote calls.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// HTTPStore implements Store against a PostgREST-compatible endpoint
// (Supabase's /rest/v1). Requests carry the project api key and a user
// bearer token; row-level security on the backend scopes rows to the user.
type HTTPStore struct {
	baseURL string
	apiKey  string
	tokens  TokenProvider
	client  *http.Client
}

func NewHTTPStore(baseURL, apiKey string, tokens TokenProvider) *HTTPStore {
	return &HTTPStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		tokens:  tokens,
		client:  &http.Client{},
	}
}

// bearerToken fetches the access token and rejects it client-side when its
// exp claim has passed, so a dead session fails fast instead of burning a
// network round-trip per queue item.
func (s *HTTPStore) bearerToken(ctx context.Context) (string, error) {
	token, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", common.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.Before(time.Now()) {
			return "", common.ErrTokenExpired
		}
	}
	return token, nil
}

func (s *HTTPStore) do(ctx context.Context, req *http.Request) error {
	token, err := s.bearerToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("%w: %s: %s", common.ErrRemoteRejected, resp.Status, bytes.TrimSpace(body))
}

func (s *HTTPStore) Upsert(ctx context.Context, table string, record Record, conflictKey string) error {
	payload, err := json.Marshal([]Record{record})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	u := fmt.Sprintf("%s/rest/v1/%s?on_conflict=%s", s.baseURL, url.PathEscape(table), url.QueryEscape(conflictKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	return s.do(ctx, req)
}

func (s *HTTPStore) Delete(ctx context.Context, table, id, userID string) error {
	u := fmt.Sprintf("%s/rest/v1/%s?id=eq.%s&user_id=eq.%s",
		s.baseURL, url.PathEscape(table), url.QueryEscape(id), url.QueryEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return s.do(ctx, req)
}
