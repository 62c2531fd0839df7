// Package token provisions the static bearer tokens handed to the seeded
// users at startup.
package token

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/loandesk/loan-api/internal/core/domain"
)

// Issuer mints HS256 tokens for seeded users. Tokens carry no expiry: they are
// pre-issued secrets, valid for the lifetime of the process.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer returns an Issuer signing with secret. An empty secret is replaced
// by 32 random bytes, which makes every restart invalidate old tokens.
func NewIssuer(secret string) (*Issuer, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate token secret: %w", err)
		}
	}
	return &Issuer{secret: key, now: time.Now}, nil
}

// Issue returns a signed token whose subject is the user ID.
func (i *Issuer) Issue(u domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(u.ID, 10),
		"role": string(u.Role),
		"jti":  uuid.NewString(),
		"iat":  i.now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token for user %d: %w", u.ID, err)
	}
	return signed, nil
}

// Verify checks the signature of raw and returns its subject.
func (i *Issuer) Verify(raw string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}
	return claims.GetSubject()
}

// SeedUsers returns the fixed user list with freshly issued tokens.
func (i *Issuer) SeedUsers() ([]domain.User, error) {
	users := []domain.User{
		{ID: 1, Name: "Mario Rossi", Email: "mario.rossi@example.com", Role: domain.RoleApplicant},
		{ID: 2, Name: "Luigi Bianchi", Email: "luigi.bianchi@example.com", Role: domain.RoleManager},
	}
	for idx := range users {
		tok, err := i.Issue(users[idx])
		if err != nil {
			return nil, err
		}
		users[idx].Token = tok
	}
	return users, nil
}

// WriteTokens renders the operator-facing token listing to w.
func WriteTokens(w io.Writer, users []domain.User, at time.Time) error {
	if _, err := fmt.Fprintln(w, "=== Predefined Users ==="); err != nil {
		return err
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(w, "%s (id=%d, %s) Token: %s\n", u.Role, u.ID, u.Name, u.Token); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "========================\nGenerated at: %s\n", at.UTC().Format(time.RFC3339))
	return err
}

// WriteTokenFile writes the token listing to path with owner-only permissions.
func WriteTokenFile(path string, users []domain.User, at time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open token file: %w", err)
	}
	defer f.Close()

	if err := WriteTokens(f, users, at); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}
