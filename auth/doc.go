// Copyright (c) 2025 Davide Marchetti.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and admin credential verification.

# Confirmation Tokens

GenerateToken issues the single-use credential embedded in confirmation
links:

	token, err := auth.GenerateToken()

Tokens carry 256 bits of crypto/rand entropy, URL-safe base64 without
padding. Collisions are negligible; the pending_submission.token UNIQUE
constraint still fails loudly if one ever happens.

# Admin Credential

The site has a single shared admin credential, read from ADMIN_USERNAME /
ADMIN_PASSWORD at startup. ADMIN_PASSWORD may be a raw secret or an
Argon2id PHC string; VerifyAdminCredentials compares either form in
constant time:

	err := auth.VerifyAdminCredentials(user, pass, cfg.Admin.Username, cfg.Admin.Password)

EncodeArgon2id builds a PHC string for provisioning a hashed password.
*/
package auth
