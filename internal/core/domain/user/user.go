package user

import (
	"fmt"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"time"
)

type ID string

type Username string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID            ID
	Username      Username
	Email         c.Email
	PasswordHash  PasswordHash
	PasswordReset c.Optional[PasswordReset]
	CreatedAt     time.Time
}

func (u *User) Validate() error {
	if u.ID == "" {
		return e.NewInvalidStateError("user id is not set")
	}
	if u.Username == "" || u.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("username or email is not set for user %s", u.ID))
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password hash is not set for user %s", u.ID))
	}
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.Token == "" {
		return e.NewInvalidStateError(fmt.Sprintf("password reset without token for user %s", u.ID))
	}
	return nil
}

// ResetStateAt reports the reset state of the user as seen at the moment now.
// A token whose expiry has passed is indistinguishable from no token at all.
func (u *User) ResetStateAt(now time.Time) ResetState {
	if u.PasswordReset.IsPresent && u.PasswordReset.Value.IsValidAt(now) {
		return PendingReset
	}
	return NoPendingReset
}

type IDGenerator interface {
	GenerateID() ID
}
