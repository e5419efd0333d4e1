package passwordhasher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"passreset/internal/core/domain/user"

	"golang.org/x/crypto/bcrypt"
)

const DefaultCost = 10

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.prepare(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.prepare(password))
	return err == nil
}

// prepare peppers the password with the secret. The HMAC digest is 64 hex
// chars, below the 72 bytes bcrypt reads.
func (h *Bcrypt) prepare(password user.RawPassword) []byte {
	if h.secret == "" {
		return []byte(password)
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(password))
	return []byte(hex.EncodeToString(mac.Sum(nil)))
}
