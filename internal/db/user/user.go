package user

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/user"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	USERNAME_CONSTRAINT_NAME = "user_username_idx"
	EMAIL_CONSTRAINT_NAME    = "user_email_idx"
)

const userColumns = `id::text, username, email, password_hash, reset_token, reset_expires_at, created_at`

// DBTX is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		string(input.ID),
		string(input.Username),
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, e.NewPersistenceError("create user", err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (user.User, error) {
	return r.getOne(
		ctx,
		"get user by id",
		`SELECT `+userColumns+` FROM "user" WHERE id = $1`,
		string(id),
	)
}

func (r *PgxUserRepository) GetByUsername(ctx context.Context, username user.Username) (user.User, error) {
	return r.getOne(
		ctx,
		"get user by username",
		`SELECT `+userColumns+` FROM "user" WHERE username = $1`,
		string(username),
	)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	return r.getOne(
		ctx,
		"get user by email",
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
	now time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrInvalidPasswordResetToken
	}
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE reset_token = $1 AND reset_expires_at > $2`,
		string(token),
		now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return u, e.NewPersistenceError("get user by password reset token", err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, hash user.PasswordHash) error {
	return r.updateOne(
		ctx,
		"set password",
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		string(id),
		string(hash),
	)
}

func (r *PgxUserRepository) SetPasswordReset(ctx context.Context, id user.ID, reset user.PasswordReset) error {
	return r.updateOne(
		ctx,
		"set password reset",
		`UPDATE "user" SET reset_token = $2, reset_expires_at = $3 WHERE id = $1`,
		string(id),
		string(reset.Token),
		reset.ExpiresAt,
	)
}

func (r *PgxUserRepository) ClearPasswordReset(ctx context.Context, id user.ID) error {
	return r.updateOne(
		ctx,
		"clear password reset",
		`UPDATE "user" SET reset_token = NULL, reset_expires_at = NULL WHERE id = $1`,
		string(id),
	)
}

// ConsumePasswordReset matches, updates and invalidates the token in one
// statement, so of two concurrent submissions only one gets a row back.
func (r *PgxUserRepository) ConsumePasswordReset(
	ctx context.Context,
	token user.PasswordResetToken,
	hash user.PasswordHash,
	now time.Time,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrInvalidPasswordResetToken
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		SET password_hash = $2, reset_token = NULL, reset_expires_at = NULL
		WHERE reset_token = $1 AND reset_expires_at > $3
		RETURNING `+userColumns,
		string(token),
		string(hash),
		now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return u, e.NewPersistenceError("consume password reset", err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) getOne(ctx context.Context, op string, sql string, args ...any) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, e.NewPersistenceError(op, err)
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) updateOne(ctx context.Context, op string, sql string, args ...any) error {
	tag, err := r.db.Exec(ctx, sql, args...)
	if isInvalidText(err) {
		return user.ErrUserDoesNotExist
	}
	if err != nil {
		return e.NewPersistenceError(op, err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// isInvalidText reports a malformed uuid in a lookup by id.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.InvalidTextRepresentation
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           string
		username     string
		email        string
		passwordHash string
		resetToken   pgtype.Text
		resetExpires pgtype.Timestamptz
		createdAt    time.Time
	)
	err = row.Scan(&id, &username, &email, &passwordHash, &resetToken, &resetExpires, &createdAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:            user.ID(id),
		Username:      user.Username(username),
		Email:         c.Email(email),
		PasswordHash:  user.PasswordHash(passwordHash),
		PasswordReset: decodePasswordReset(resetToken, resetExpires),
		CreatedAt:     createdAt,
	}, nil
}

func decodePasswordReset(token pgtype.Text, expiresAt pgtype.Timestamptz) c.Optional[user.PasswordReset] {
	if !token.Valid || !expiresAt.Valid {
		return c.None[user.PasswordReset]()
	}
	return c.NewOptional(
		user.PasswordReset{Token: user.PasswordResetToken(token.String), ExpiresAt: expiresAt.Time},
		true,
	)
}
