// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrMalformedHash      = errors.New("malformed argon2id hash")
)

// tokenBytes gives 256 bits of entropy per confirmation token.
const tokenBytes = 32

// GenerateToken creates the single-use confirmation token embedded in the
// email link. URL-safe base64 without padding.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// VerifyAdminCredentials checks the login form against the configured
// credential. The configured password is either an Argon2id PHC string
// ($argon2id$v=19$m=...,t=...,p=...$salt$hash) or a raw secret; both are
// compared in constant time.
func VerifyAdminCredentials(username, password, cfgUsername, cfgPassword string) error {
	userOK := hmac.Equal([]byte(username), []byte(cfgUsername))

	var passOK bool
	if strings.HasPrefix(cfgPassword, "$argon2id$") {
		ok, err := verifyArgon2id(password, cfgPassword)
		if err != nil {
			return err
		}
		passOK = ok
	} else {
		passOK = hmac.Equal([]byte(password), []byte(cfgPassword))
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// verifyArgon2id re-derives the key from a PHC-encoded hash and compares.
// Parameter bounds keep a corrupted config value from demanding gigabytes.
func verifyArgon2id(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	// "", "argon2id", "v=19", "m=...,t=...,p=...", salt, hash
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, ErrMalformedHash
	}
	if memory == 0 || memory > 1<<20 || time == 0 || time > 16 || threads == 0 {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrMalformedHash
	}
	if len(salt) == 0 || len(want) == 0 || len(want) > 512 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// EncodeArgon2id produces a PHC string for ADMIN_PASSWORD. Exposed so an
// operator can generate a hash once (go run ./... -hash-password style
// tooling) and tests can build known-good values.
func EncodeArgon2id(password string, salt []byte, time, memory uint32, threads uint8, keyLen uint32) string {
	key := argon2.IDKey([]byte(password), salt, time, memory, threads, keyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memory, time, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}
