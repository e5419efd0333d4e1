package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "passreset/internal/core/domain/common"
	"sync"
	"time"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeIDGenerator struct {
	counter int
	lock    sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (g *FakeIDGenerator) GenerateID() ID {
	g.lock.Lock()
	defer g.lock.Unlock()
	g.counter++
	return ID(fmt.Sprintf("user-%d", g.counter))
}

type FakePasswordResetTokenGenerator struct {
	Token       PasswordResetToken
	ReturnError bool
}

func NewFakePasswordResetTokenGenerator(token string) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: PasswordResetToken(token)}
}

func (g *FakePasswordResetTokenGenerator) GeneratePasswordResetToken() (PasswordResetToken, error) {
	if g.ReturnError {
		return "", fmt.Errorf("could not generate password reset token")
	}
	return g.Token, nil
}

// FakePasswordResetIssuer issues a fixed token and stores it in the repository.
type FakePasswordResetIssuer struct {
	Repository    UserRepository
	Token         PasswordResetToken
	ValidDuration time.Duration
	Now           func() time.Time
	ReturnError   bool
}

func NewFakePasswordResetIssuer(
	repository UserRepository,
	token string,
	validDuration time.Duration,
	now func() time.Time,
) *FakePasswordResetIssuer {
	return &FakePasswordResetIssuer{
		Repository:    repository,
		Token:         PasswordResetToken(token),
		ValidDuration: validDuration,
		Now:           now,
	}
}

func (i *FakePasswordResetIssuer) Issue(ctx context.Context, u User) (reset PasswordReset, err error) {
	if i.ReturnError {
		return reset, fmt.Errorf("could not issue password reset")
	}
	reset = NewPasswordReset(i.Token, i.Now(), i.ValidDuration)
	if err := i.Repository.SetPasswordReset(ctx, u.ID, reset); err != nil {
		return PasswordReset{}, err
	}
	return reset, nil
}

type FakePasswordResetTokenSender struct {
	Sent        []PasswordResetToken
	SentTo      []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendPasswordResetToken(
	ctx context.Context,
	u User,
	token PasswordResetToken,
) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token")
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, token)
	s.SentTo = append(s.SentTo, u)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

// FakeUserRepository keeps users in memory. Every method holds the lock for
// its whole duration, so conditional updates are atomic like the SQL ones.
type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Users {
		if existing.Username == input.Username {
			return u, ErrUsernameAlreadyExists
		}
		if existing.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
	}
	u = User{
		ID:           input.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (User, error) {
	return r.find(func(u User) bool { return u.ID == id })
}

func (r *FakeUserRepository) GetByUsername(ctx context.Context, username Username) (User, error) {
	return r.find(func(u User) bool { return u.Username == username })
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (User, error) {
	return r.find(func(u User) bool { return u.Email == email })
}

func (r *FakeUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token PasswordResetToken,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by password reset token")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.PasswordReset.IsPresent && u.PasswordReset.Value.Matches(token, now) {
			return u, nil
		}
	}
	return u, ErrInvalidPasswordResetToken
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, hash PasswordHash) error {
	return r.update(id, func(u *User) { u.PasswordHash = hash })
}

func (r *FakeUserRepository) SetPasswordReset(ctx context.Context, id ID, reset PasswordReset) error {
	return r.update(id, func(u *User) { u.PasswordReset = c.NewOptional(reset, true) })
}

func (r *FakeUserRepository) ClearPasswordReset(ctx context.Context, id ID) error {
	return r.update(id, func(u *User) { u.PasswordReset = c.None[PasswordReset]() })
}

func (r *FakeUserRepository) ConsumePasswordReset(
	ctx context.Context,
	token PasswordResetToken,
	hash PasswordHash,
	now time.Time,
) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not consume password reset")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.PasswordReset.IsPresent && u.PasswordReset.Value.Matches(token, now) {
			r.Users[ix].PasswordHash = hash
			r.Users[ix].PasswordReset = c.None[PasswordReset]()
			return r.Users[ix], nil
		}
	}
	return u, ErrInvalidPasswordResetToken
}

func (r *FakeUserRepository) find(match func(User) bool) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if match(u) {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) update(id ID, apply func(*User)) error {
	if r.ReturnError {
		return fmt.Errorf("could not update user %s", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Users {
		if r.Users[ix].ID == id {
			apply(&r.Users[ix])
			return nil
		}
	}
	return ErrUserDoesNotExist
}
