package auth

import (
	"testing"
	"time"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := NewCodec("test-secret", time.Hour)
	tok, err := c.Issue("user-1", "admin@test.com", []string{"r1", "r2"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Email != "admin@test.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "r1" || claims.Roles[1] != "r2" {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	// Same claims within the same second must still yield distinct
	// tokens; session rows are keyed on the token string.
	c := NewCodec("test-secret", time.Hour)
	a, err := c.Issue("user-1", "admin@test.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Issue("user-1", "admin@test.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two tokens for the same claims are identical")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := NewCodec("secret-a", time.Hour).Issue("u", "e@x.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewCodec("secret-b", time.Hour).Verify(tok); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	c := &Codec{secret: []byte("s"), ttl: -time.Minute}
	tok, err := c.Issue("u", "e@x.com", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	c := NewCodec("s", time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := c.Verify(tok); err != ErrInvalidToken {
			t.Errorf("Verify(%q) err = %v, want ErrInvalidToken", tok, err)
		}
	}
}
