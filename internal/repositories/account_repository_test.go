package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-media-service/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestCreateAccountReturnsGeneratedID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("INSERT INTO account").
		WithArgs("bob", "secret").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(7, "bob", "secret"))

	created, err := repo.CreateAccount(context.Background(), models.Account{Username: "bob", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, 7, created.AccountID)
	assert.Equal(t, "bob", created.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("INSERT INTO account").
		WithArgs("bob", "secret").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateAccount(context.Background(), models.Account{Username: "bob", Password: "secret"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCredentialsMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT account_id, username, password FROM account").
		WithArgs("bob", "secret").
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "username", "password"}).AddRow(7, "bob", "secret"))

	account, err := repo.FindByCredentials(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, 7, account.AccountID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCredentialsNoMatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT account_id, username, password FROM account").
		WithArgs("bob", "wrong").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCredentials(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepo(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.AccountExists(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}
