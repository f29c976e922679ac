package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"social-media-service/internal/models"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

// postgres error code for unique_violation.
const uniqueViolation = "23505"

// AccountRepository abstracts account persistence.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindByCredentials(ctx context.Context, username, password string) (models.Account, error)
	AccountExists(ctx context.Context, accountID int) (bool, error)
}

// AccountRepo is a sqlx-backed repository.
type AccountRepo struct {
	db *sqlx.DB
}

// NewAccountRepo constructs AccountRepo.
func NewAccountRepo(db *sqlx.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// CreateAccount inserts a new account and returns it with the generated id.
// A unique-constraint violation on username maps to ErrDuplicateUsername.
func (r *AccountRepo) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	var created models.Account
	err := r.db.QueryRowxContext(ctx, `INSERT INTO account (username, password) VALUES ($1, $2) RETURNING account_id, username, password`, account.Username, account.Password).
		Scan(&created.AccountID, &created.Username, &created.Password)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Account{}, ErrDuplicateUsername
		}
		return models.Account{}, err
	}
	return created, nil
}

// FindByCredentials looks up an account by exact username and password
// match. Passwords are compared as stored, plain strings.
func (r *AccountRepo) FindByCredentials(ctx context.Context, username, password string) (models.Account, error) {
	var account models.Account
	err := r.db.GetContext(ctx, &account, `SELECT account_id, username, password FROM account WHERE username=$1 AND password=$2`, username, password)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

// AccountExists reports whether an account row exists.
func (r *AccountRepo) AccountExists(ctx context.Context, accountID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM account WHERE account_id=$1)`, accountID)
	return exists, err
}
