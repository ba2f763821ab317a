package web

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const confirmIssuer = "inventario-web"

var ErrBadConfirmation = errors.New("invalid delete confirmation")

// ConfirmTokens signs the one-shot proof that the user went through the
// delete prompt for a given product. Accepted token ids are remembered until
// they expire so a token cannot be replayed.
type ConfirmTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu   sync.Mutex
	used map[string]time.Time
}

func NewConfirmTokens(secret string, ttl time.Duration) *ConfirmTokens {
	return &ConfirmTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		used:   make(map[string]time.Time),
	}
}

func (t *ConfirmTokens) Issue(productID int) (string, error) {
	now := t.now()

	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.Itoa(productID),
		Issuer:    confirmIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify accepts tok only if it was issued here, is unexpired, names
// productID and has not been accepted before.
func (t *ConfirmTokens) Verify(tok string, productID int) error {
	if tok == "" {
		return ErrBadConfirmation
	}

	var c jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tok, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(confirmIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid {
		return ErrBadConfirmation
	}

	if c.Subject != strconv.Itoa(productID) || c.ID == "" {
		return ErrBadConfirmation
	}
	return t.consume(c.ID, c.ExpiresAt)
}

func (t *ConfirmTokens) consume(jti string, exp *jwt.NumericDate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for id, until := range t.used {
		if !now.Before(until) {
			delete(t.used, id)
		}
	}

	if _, seen := t.used[jti]; seen {
		return ErrBadConfirmation
	}

	until := now.Add(t.ttl)
	if exp != nil {
		until = exp.Time
	}
	t.used[jti] = until
	return nil
}
