package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"log/slog"
)

// JWKSVerifier validates RS256 bearer tokens against a published key set.
// The key set is fetched lazily, cached for the refresh interval, and
// re-fetched once when a token references an unknown key id (rotation).
type JWKSVerifier struct {
	jwksURL    string
	httpClient *http.Client
	logger     *slog.Logger
	refresh    time.Duration
	retryCount int
	backoff    time.Duration
	tokens     *TokenCache

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

func NewJWKSVerifier(jwksURL string, httpClient *http.Client, refresh time.Duration, logger *slog.Logger) *JWKSVerifier {
	if refresh <= 0 {
		refresh = 15 * time.Minute
	}
	return &JWKSVerifier{
		jwksURL:    jwksURL,
		httpClient: httpClient,
		logger:     logger,
		refresh:    refresh,
		retryCount: 2,
		backoff:    500 * time.Millisecond,
		tokens:     NewTokenCache(),
	}
}

// Verify parses and validates token. The subject claim becomes the identity.
// Expired, unsigned or otherwise invalid tokens yield ErrUnauthorized; a
// key-set fetch failure is reported as a distinct error so callers can tell
// "bad credential" from "verification unavailable".
func (v *JWKSVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrUnauthorized
	}
	if identity, ok := v.tokens.Get(token); ok {
		return identity, nil
	}

	keys, err := v.keySet(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("load key set: %w", err)
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if key, ok := keys[kid]; ok {
			return key, nil
		}
		// Unknown kid: the set may have rotated since the last fetch.
		fresh, err := v.fetchKeySet(ctx)
		if err != nil {
			return nil, err
		}
		v.storeKeySet(fresh)
		if key, ok := fresh[kid]; ok {
			return key, nil
		}
		return nil, fmt.Errorf("unknown key id %q", kid)
	}, jwt.WithValidMethods([]string{"RS256"}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Identity{}, ErrUnauthorized
	}

	identity := Identity{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		v.tokens.Put(token, identity, claims.ExpiresAt.Time)
	}
	return identity, nil
}

func (v *JWKSVerifier) keySet(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	v.mu.RLock()
	keys, fetchedAt := v.keys, v.fetchedAt
	v.mu.RUnlock()
	if keys != nil && time.Since(fetchedAt) < v.refresh {
		return keys, nil
	}

	fresh, err := v.fetchKeySet(ctx)
	if err != nil {
		// Serve the stale set if we have one rather than failing requests.
		if keys != nil {
			return keys, nil
		}
		return nil, err
	}
	v.storeKeySet(fresh)
	return fresh, nil
}

func (v *JWKSVerifier) storeKeySet(keys map[string]*rsa.PublicKey) {
	v.mu.Lock()
	v.keys = keys
	v.fetchedAt = time.Now()
	v.mu.Unlock()
}

func (v *JWKSVerifier) fetchKeySet(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	var lastErr error
	for attempt := 0; attempt <= v.retryCount; attempt++ {
		keys, err := v.doFetch(ctx)
		if err == nil {
			return keys, nil
		}
		if !isTransient(err) || attempt == v.retryCount {
			return nil, err
		}
		lastErr = err
		if v.logger != nil {
			v.logger.Warn("jwks fetch retry",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(v.backoff * time.Duration(attempt+1)):
		}
	}
	return nil, fmt.Errorf("jwks fetch failed: %w", lastErr)
}

func (v *JWKSVerifier) doFetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, &transientError{status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode key set: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" || k.Kid == "" {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			if v.logger != nil {
				v.logger.Warn("skipping unusable jwk",
					slog.String("kid", k.Kid),
					slog.String("error", err.Error()))
			}
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, errors.New("no usable keys in key set")
	}
	return keys, nil
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (k jwk) publicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(n),
		E: int(new(big.Int).SetBytes(e).Int64()),
	}, nil
}

type transientError struct {
	status int
}

func (e *transientError) Error() string {
	return fmt.Sprintf("transient status %d", e.status)
}

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
