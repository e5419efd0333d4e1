package randomstringgenerator

import (
	"crypto/rand"
	"encoding/hex"
	"passreset/internal/core/domain/user"
)

// TokenBytes is the entropy of a password reset token.
const TokenBytes = 32

type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: TokenBytes}
}

// GeneratePasswordResetToken returns hex encoded bytes read from the
// operating system CSPRNG.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, g.size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
