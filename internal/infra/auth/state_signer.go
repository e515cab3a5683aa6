package auth

import (
	"time"

	"catalog/config"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// stateTTL bounds how long an OAuth handshake may take between the initial
// redirect and the provider callback.
const stateTTL = 10 * time.Minute

// jwtStateSigner implements service.StateSigner with a short-lived HMAC JWT.
// Carrying the client-type marker in the state parameter keeps the OAuth
// handshake stateless on the server side.
type jwtStateSigner struct {
	secret []byte
}

type stateClaims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

// NewStateSigner is the constructor for jwtStateSigner.
func NewStateSigner(cfg *config.Config) (service.StateSigner, error) {
	if cfg.Auth.StateSecret == "" {
		return nil, errors.New("oauth state secret must be provided")
	}

	return &jwtStateSigner{secret: []byte(cfg.Auth.StateSecret)}, nil
}

// Sign produces a state parameter binding the client type.
func (s *jwtStateSigner) Sign(client service.ClientType) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		Client: string(client),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign oauth state")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a state parameter and returns the
// client type it carries.
func (s *jwtStateSigner) Verify(state string) (service.ClientType, error) {
	claims := new(stateClaims)
	token, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domainerrors.ErrOAuthStateInvalid.WrapMessage("state verification failed")
	}

	switch service.ClientType(claims.Client) {
	case service.ClientTypeWeb, service.ClientTypeIOS:
		return service.ClientType(claims.Client), nil
	default:
		return "", domainerrors.ErrOAuthStateInvalid.WrapMessage("unknown client type in state")
	}
}
