package workspace

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Join codes are 6 characters over a 36-symbol lowercase-alphanumeric
// alphabet, picked uniformly per character. Codes are scoped to their
// workspace: duplicates across workspaces are possible and harmless because
// redemption always names the workspace.
const (
	joinCodeLength   = 6
	joinCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GenerateJoinCode generates a random join code.
func GenerateJoinCode() (string, error) {
	alphabetLen := big.NewInt(int64(len(joinCodeAlphabet)))

	code := make([]byte, joinCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate join code: %w", err)
		}
		code[i] = joinCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}

// JoinCodeMatches compares a supplied code against the stored one,
// case-insensitively.
func JoinCodeMatches(stored, supplied string) bool {
	return stored != "" && strings.EqualFold(stored, supplied)
}
