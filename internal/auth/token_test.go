package auth

import (
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-signing-key", ttl)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	return svc
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	if _, err := NewTokenService("", time.Minute); err == nil {
		t.Error("empty secret should be rejected at startup")
	}
	if _, err := NewTokenService("key", 0); err == nil {
		t.Error("zero ttl should be rejected at startup")
	}
}

func TestIssueAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)

	token, err := svc.Issue("alice@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("subject = %q, want alice@example.com", subject)
	}
}

func TestValidateExpiryBoundary(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("bob@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Just inside the TTL.
	svc.now = func() time.Time { return issuedAt.Add(30*time.Minute - time.Second) }
	if _, err := svc.Validate(token); err != nil {
		t.Errorf("token should still be valid just before expiry: %v", err)
	}

	// Just past the TTL.
	svc.now = func() time.Time { return issuedAt.Add(30*time.Minute + time.Second) }
	if _, err := svc.Validate(token); err == nil {
		t.Error("token should be invalid just after expiry")
	}
}

func TestValidateRejectsForeignKey(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	other, err := NewTokenService("a-different-key", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, err := other.Issue("carol@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Validate(token); err == nil {
		t.Error("token signed with another key should fail validation")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)

	token, err := svc.Issue("dave@example.com")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip one character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Validate(tampered); err == nil {
		t.Error("tampered token should fail validation")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := svc.Validate(token); err == nil {
			t.Errorf("Validate(%q) should fail", token)
		}
	}
}
