// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if token == "" {
		t.Error("GenerateToken() returned empty string")
	}

	// Should be URL-safe (no padding)
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("GenerateToken() contains non-URL-safe characters: %s", token)
	}

	// 32 bytes base64url-encoded without padding = 43 chars
	if len(token) != 43 {
		t.Errorf("GenerateToken() length = %d, want 43", len(token))
	}

	// Test randomness - should not produce duplicates
	tokens := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken() error on iteration %d: %v", i, err)
		}
		if tokens[token] {
			t.Errorf("GenerateToken() produced duplicate token: %s", token)
		}
		tokens[token] = true
	}
}

func TestVerifyAdminCredentials_Plaintext(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"valid credentials", "admin", "s3cret", false},
		{"wrong password", "admin", "nope", true},
		{"wrong username", "root", "s3cret", true},
		{"both wrong", "root", "nope", true},
		{"empty password", "admin", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAdminCredentials(tt.username, tt.password, "admin", "s3cret")
			if (err != nil) != tt.wantErr {
				t.Errorf("VerifyAdminCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidCredentials {
				t.Errorf("VerifyAdminCredentials() error = %v, want %v", err, ErrInvalidCredentials)
			}
		})
	}
}

func TestVerifyAdminCredentials_Argon2id(t *testing.T) {
	salt := []byte("0123456789abcdef")
	encoded := EncodeArgon2id("s3cret", salt, 1, 64*1024, 2, 32)

	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("EncodeArgon2id() produced unexpected prefix: %s", encoded)
	}

	if err := VerifyAdminCredentials("admin", "s3cret", "admin", encoded); err != nil {
		t.Errorf("expected hashed password to verify, got %v", err)
	}

	if err := VerifyAdminCredentials("admin", "wrong", "admin", encoded); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestVerifyAdminCredentials_MalformedHash(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"truncated", "$argon2id$v=19$m=65536"},
		{"wrong algorithm", "$argon2i$v=19$m=65536,t=1,p=2$c2FsdA$aGFzaA"},
		{"bad version", "$argon2id$v=18$m=65536,t=1,p=2$c2FsdA$aGFzaA"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=2$!!!$aGFzaA"},
		{"absurd memory", "$argon2id$v=19$m=4294967295,t=1,p=2$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyAdminCredentials("admin", "pw", "admin", tt.encoded)
			if err != ErrMalformedHash {
				t.Errorf("expected ErrMalformedHash, got %v", err)
			}
		})
	}
}

// Benchmark tests
func BenchmarkGenerateToken(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateToken()
	}
}
