// Package apple verifies Sign-in-with-Apple identity tokens.
//
// Unlike the redirect-based code flows, SIWA hands the backend a signed JWT
// assertion directly. Verification checks the RS256 signature against Apple's
// published JWKS, the issuer, and that the audience matches the configured
// app bundle identifier.
package apple

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"sync"
	"time"

	"catalog/config"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	issuer  = "https://appleid.apple.com"
	keysURL = "https://appleid.apple.com/auth/keys"

	// keyCacheTTL bounds how long fetched JWKS keys are reused before a
	// refetch. Apple rotates keys rarely; unknown kids force a refresh.
	keyCacheTTL = time.Hour
)

// jwk is one RSA key from Apple's JWKS document.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

type identityClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// verifier implements service.IdentityTokenVerifier against Apple's JWKS.
type verifier struct {
	bundleID string
	keysURL  string
	client   *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewVerifier is the constructor for the SIWA verifier. A missing bundle
// identifier makes SIWA unavailable; the handler reports that as an internal
// misconfiguration rather than rejecting the client's token.
func NewVerifier(cfg *config.Config) service.IdentityTokenVerifier {
	if cfg.SIWA == nil || cfg.SIWA.BundleID == "" {
		return nil
	}

	return &verifier{
		bundleID: cfg.SIWA.BundleID,
		keysURL:  keysURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify checks the identity token and returns the verified subject and email.
func (v *verifier) Verify(ctx context.Context, identityToken string) (*service.SIWAUser, error) {
	claims := new(identityClaims)
	token, err := jwt.ParseWithClaims(identityToken, claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, errors.New("identity token has no kid header")
			}

			return v.publicKey(ctx, kid)
		},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(v.bundleID),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrSIWATokenInvalid.WrapMessage("identity token verification failed")
	}
	if claims.Subject == "" {
		return nil, domainerrors.ErrSIWATokenInvalid.WrapMessage("identity token has no subject")
	}

	return &service.SIWAUser{
		Identifier: claims.Subject,
		Email:      claims.Email,
	}, nil
}

// publicKey returns the RSA key for a kid, refetching the JWKS when the cache
// is stale or the kid is unknown.
func (v *verifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if key, ok := v.keys[kid]; ok && time.Since(v.fetchedAt) < keyCacheTTL {
		return key, nil
	}

	if err := v.refreshKeysLocked(ctx); err != nil {
		return nil, err
	}

	key, ok := v.keys[kid]
	if !ok {
		return nil, errors.Errorf("no apple public key for kid %q", kid)
	}

	return key, nil
}

func (v *verifier) refreshKeysLocked(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.keysURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build apple jwks request")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch apple jwks")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("apple jwks endpoint returned status %d", resp.StatusCode)
	}

	var doc jwks
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return errors.Wrap(err, "failed to decode apple jwks")
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k)
		if err != nil {
			return err
		}
		keys[k.Kid] = pub
	}

	v.keys = keys
	v.fetchedAt = time.Now()

	return nil
}

// parseRSAKey builds an rsa.PublicKey from the base64url modulus and exponent.
func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid modulus in jwk %q", k.Kid)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid exponent in jwk %q", k.Kid)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
