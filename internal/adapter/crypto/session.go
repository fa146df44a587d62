package crypto

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	"gitlab.com/llmeet.net/internal/config"
	"gitlab.com/llmeet.net/internal/core/ports/primary"
	"gitlab.com/llmeet.net/internal/domain"
	"gitlab.com/llmeet.net/internal/static/errs"
)

var _ primary.SessionCodec = (*SessionCodec)(nil)

const (
	issuer      = "llmeet"
	nonceSize   = 24
	sealKeyInfo = "llmeet session access token"
)

type sessionClaims struct {
	SessionID   string  `json:"sid"`
	UserID      *int64  `json:"uid,omitempty"`
	Login       string  `json:"login,omitempty"`
	Name        *string `json:"name,omitempty"`
	AvatarURL   *string `json:"avatar,omitempty"`
	SealedToken string  `json:"tok,omitempty"`
	jwt.RegisteredClaims
}

// SessionCodec signs sessions as HS256 JWTs. The GitHub access token is sealed
// with a key derived from the same secret, so the cookie never carries it in clear.
type SessionCodec struct {
	signingKey []byte
	sealKey    [32]byte
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionCodec(cfg *config.SessionConfig) (*SessionCodec, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret must not be empty")
	}
	c := &SessionCodec{
		signingKey: []byte(cfg.Secret),
		ttl:        cfg.TTL,
		now:        time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = time.Hour
	}
	kdf := hkdf.New(sha256.New, []byte(cfg.Secret), nil, []byte(sealKeyInfo))
	if _, err := io.ReadFull(kdf, c.sealKey[:]); err != nil {
		return nil, fmt.Errorf("derive seal key: %w", err)
	}
	return c, nil
}

func (c *SessionCodec) Encode(ctx context.Context, session *domain.Session) (string, error) {
	now := c.now()
	claims := sessionClaims{
		SessionID: session.ID,
		UserID:    session.UserID,
		Login:     session.Login,
		Name:      session.Name,
		AvatarURL: session.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	if session.AccessToken != "" {
		sealed, err := c.seal(session.AccessToken)
		if err != nil {
			return "", fmt.Errorf("%w: %v", errs.GeneratingToken, err)
		}
		claims.SealedToken = sealed
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.GeneratingToken, err)
	}
	return signed, nil
}

func (c *SessionCodec) Decode(ctx context.Context, token string) (*domain.Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.InvalidSession, err)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", errs.InvalidSession)
	}

	session := &domain.Session{
		ID:        claims.SessionID,
		UserID:    claims.UserID,
		Login:     claims.Login,
		Name:      claims.Name,
		AvatarURL: claims.AvatarURL,
	}
	if claims.SealedToken != "" {
		accessToken, err := c.open(claims.SealedToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errs.InvalidSession, err)
		}
		session.AccessToken = accessToken
	}
	return session, nil
}

func (c *SessionCodec) seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", err
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &c.sealKey)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (c *SessionCodec) open(sealed string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return "", fmt.Errorf("sealed token too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &c.sealKey)
	if !ok {
		return "", fmt.Errorf("sealed token does not open")
	}
	return string(plain), nil
}
