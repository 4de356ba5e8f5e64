package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// PG is the PostgreSQL-backed identity service.
type PG struct {
	pool *pgxpool.Pool
}

// NewPG creates a PostgreSQL-backed identity service.
func NewPG(pool *pgxpool.Pool) *PG {
	return &PG{pool: pool}
}

// ResolveCaller looks up the account and profile behind a bearer token.
// Expired or unknown tokens return ErrInvalidToken.
func (p *PG) ResolveCaller(ctx context.Context, token string) (Caller, error) {
	const q = `
		SELECT a.id, pr.org_id, pr.email, pr.first_name || ' ' || pr.last_name, pr.role
		FROM access_tokens t
		JOIN accounts a ON a.id = t.account_id
		JOIN profiles pr ON pr.id = a.id
		WHERE t.token = $1
		  AND (t.expires_at IS NULL OR t.expires_at > now())`

	var c Caller
	var role string
	err := p.pool.QueryRow(ctx, q, token).Scan(&c.ID, &c.OrgID, &c.Email, &c.Name, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return Caller{}, ErrInvalidToken
	}
	if err != nil {
		return Caller{}, fmt.Errorf("resolve caller: %w", err)
	}
	c.Role = Role(role)

	return c, nil
}

// CreateAccount inserts an account with a bcrypt-hashed password and the
// email marked confirmed. Returns the new account id.
func (p *PG) CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	const q = `
		INSERT INTO accounts (email, password_hash, email_confirmed_at)
		VALUES ($1, $2, now())
		RETURNING id`

	var id uuid.UUID
	if err := p.pool.QueryRow(ctx, q, email, string(hash)).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, fmt.Errorf("create account: %w", err)
	}

	return id, nil
}

// DeleteAccount removes an account. Dependent rows (profile, tokens) go with
// it via ON DELETE CASCADE, which is what the import compensation relies on.
func (p *PG) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
