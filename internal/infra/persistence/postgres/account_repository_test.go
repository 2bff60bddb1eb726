package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance/internal/domain/entity"
	domainerrors "finance/internal/domain/errors"
	"finance/internal/domain/repository"
	"finance/internal/infra/persistence/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var accountColumns = []string{"id", "username", "password_hash", "password_salt", "role", "created_at", "updated_at"}

func TestAccountRepository_FindByUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(id, "user", "Hid2jXsUCDAPoO1UYqgmHgGHgBw=", "HNfViOWFJCqTJmte8E7Ijw==", 0, now, now))

	account, err := repo.FindByUsername(context.Background(), "user")
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "user", account.Username)
	assert.Equal(t, entity.RoleUser, account.Role)
	assert.Len(t, account.PasswordHash, 20)
	assert.Len(t, account.PasswordSalt, 16)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByUsername_CorruptSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE username = \$1`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.New(), "broken", "%%%", "HNfViOWFJCqTJmte8E7Ijw==", 1, now, now))

	account, err := repo.FindByUsername(context.Background(), "broken")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, account.Role)
	assert.True(t, account.CredentialsCorrupt())

	_, _, err = account.Credentials()
	assert.ErrorIs(t, err, domainerrors.ErrCredentialDecode)
}

func TestAccountRepository_FindByUsername_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "accounts"`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByUsername(context.Background(), "user")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestAccountRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "accounts" ORDER BY username`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.New(), "admin", model.EncodeSecret([]byte("k1")), model.EncodeSecret([]byte("s1")), 1, now, now).
			AddRow(uuid.New(), "user", model.EncodeSecret([]byte("k2")), model.EncodeSecret([]byte("s2")), 0, now, now))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "admin", accounts[0].Username)
	assert.Equal(t, entity.RoleAdmin, accounts[0].Role)
	assert.Equal(t, []byte("s2"), accounts[1].PasswordSalt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_List_CorruptRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "accounts" ORDER BY username`).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(uuid.New(), "admin", model.EncodeSecret([]byte("k1")), model.EncodeSecret([]byte("s1")), 1, now, now).
			AddRow(uuid.New(), "broken", "%%%", model.EncodeSecret([]byte("s2")), 0, now, now))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.False(t, accounts[0].CredentialsCorrupt())
	assert.Equal(t, "broken", accounts[1].Username)
	assert.True(t, accounts[1].CredentialsCorrupt())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_CorruptKeepsStoredSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE "accounts" SET "role"=\$1,"updated_at"=\$2 WHERE username = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	account := &entity.Account{Username: "broken", Role: entity.RoleAdmin}
	account.MarkCredentialsCorrupt(domainerrors.ErrCredentialDecode)

	require.NoError(t, repo.Update(context.Background(), account))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_RepairsCorruptSecret(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE "accounts" SET "password_hash"=\$1,"password_salt"=\$2,"role"=\$3`).
		WithArgs(model.EncodeSecret([]byte("key")), model.EncodeSecret([]byte("salt")), int64(entity.RoleUser), sqlmock.AnyArg(), "broken").
		WillReturnResult(sqlmock.NewResult(0, 1))

	account := &entity.Account{Username: "broken", Role: entity.RoleUser}
	account.MarkCredentialsCorrupt(domainerrors.ErrCredentialDecode)
	account.SetCredentials([]byte("salt"), []byte("key"))

	require.NoError(t, repo.Update(context.Background(), account))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &entity.Account{
		Username:     "user",
		PasswordHash: []byte("key"),
		PasswordSalt: []byte("salt"),
		Role:         entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`UPDATE "accounts" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Account{Username: "ghost"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectExec(`DELETE FROM "accounts" WHERE username = \$1`).
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "accounts" WHERE username = \$1`).
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "user"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "user"), repository.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Count(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "accounts"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Join(errors.New("insert"), gorm.ErrDuplicatedKey)))
	assert.False(t, isUniqueConstraintViolation(gorm.ErrRecordNotFound))
	assert.False(t, isUniqueConstraintViolation(nil))
}
