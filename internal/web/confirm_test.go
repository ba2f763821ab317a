package web

import (
	"errors"
	"testing"
	"time"
)

func TestConfirmTokens(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewConfirmTokens("secret-one-secret-one-secret-one", 5*time.Minute)
	tokens.now = func() time.Time { return now }

	tok, err := tokens.Issue(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Mismatches do not use the token up.
	if err := tokens.Verify(tok, 8); !errors.Is(err, ErrBadConfirmation) {
		t.Fatalf("other product err=%v", err)
	}
	if err := tokens.Verify(tok, 7); err != nil {
		t.Fatalf("verify: %v", err)
	}

	tests := []struct {
		name   string
		verify func() error
	}{
		{"empty", func() error { return tokens.Verify("", 7) }},
		{"garbage", func() error { return tokens.Verify("not-a-token", 7) }},
		{"replayed", func() error { return tokens.Verify(tok, 7) }},
		{"other secret", func() error {
			other := NewConfirmTokens("secret-two-secret-two-secret-two", 5*time.Minute)
			other.now = tokens.now
			return other.Verify(tok, 7)
		}},
		{"expired", func() error {
			late := NewConfirmTokens("secret-one-secret-one-secret-one", 5*time.Minute)
			late.now = func() time.Time { return now.Add(6 * time.Minute) }
			return late.Verify(tok, 7)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.verify(); !errors.Is(err, ErrBadConfirmation) {
				t.Fatalf("err=%v want ErrBadConfirmation", err)
			}
		})
	}
}

func TestConfirmTokens_ForgetsExpiredIDs(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewConfirmTokens("secret-one-secret-one-secret-one", time.Minute)
	tokens.now = func() time.Time { return now }

	first, _ := tokens.Issue(1)
	if err := tokens.Verify(first, 1); err != nil {
		t.Fatalf("verify: %v", err)
	}

	now = now.Add(2 * time.Minute)
	second, _ := tokens.Issue(2)
	if err := tokens.Verify(second, 2); err != nil {
		t.Fatalf("verify: %v", err)
	}

	tokens.mu.Lock()
	n := len(tokens.used)
	tokens.mu.Unlock()
	if n != 1 {
		t.Fatalf("used=%d want=1", n)
	}
}
