// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// codeLength is the hex length of an issued confirmation code.
const codeLength = 32

// AccountState is the snapshot of account fields covered by the code
// fingerprint. Any change to these fields invalidates all previously issued
// codes; ordinary profile edits (names, bio) deliberately do not.
type AccountState struct {
	ID           string
	Username     string
	Email        string
	Confirmed    bool
	TokenVersion int
}

// CodeIssuer derives and verifies confirmation codes from account state.
//
// # Design
//
// A code is HMAC-SHA256(secret, fingerprint) truncated to [codeLength] hex
// characters, where the fingerprint hashes the [AccountState]. The code is
// therefore stateless on the issuing side: verification recomputes it from
// the current account state, so a state transition (first confirmation, or a
// token_version bump on each redemption) retires every outstanding code
// without any bookkeeping.
type CodeIssuer struct {
	secret []byte
}

// NewCodeIssuer creates a CodeIssuer keyed with the given server secret.
func NewCodeIssuer(secret string) *CodeIssuer {
	return &CodeIssuer{secret: []byte(secret)}
}

// MakeCode derives the confirmation code currently valid for the account state.
func (issuer *CodeIssuer) MakeCode(state AccountState) string {
	mac := hmac.New(sha256.New, issuer.secret)
	mac.Write(fingerprint(state))
	code := hex.EncodeToString(mac.Sum(nil))

	return code[:codeLength]
}

// CheckCode reports whether the presented code matches the account state.
// The comparison is constant-time.
func (issuer *CodeIssuer) CheckCode(state AccountState, code string) bool {
	expected := issuer.MakeCode(state)
	return hmac.Equal([]byte(expected), []byte(code))
}

// fingerprint hashes the invalidation-relevant account fields.
func fingerprint(state AccountState) []byte {
	payload := strings.Join([]string{
		state.ID,
		state.Username,
		state.Email,
		strconv.FormatBool(state.Confirmed),
		fmt.Sprintf("%d", state.TokenVersion),
	}, "\n")

	sum := sha256.Sum256([]byte(payload))
	return sum[:]
}
