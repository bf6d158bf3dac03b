package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SoufianeJm/mooja/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func activationOrg() *models.Organization {
	code := "WELCOME-01"
	status := "verified"
	now := time.Now()
	return &models.Organization{
		ID:                 "org-1",
		Name:               "Acme Rights",
		Username:           "acme",
		VerificationStatus: status,
		InviteCodeUsed:     &code,
		VerifiedAt:         &now,
	}
}

func TestConsumeInviteCode_FlipsCodeAndCommits(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "invite_codes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ConsumeInviteCode(activationOrg(), "WELCOME-01")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeInviteCode_GuardsOnUnusedFlag(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The code update must filter on is_used alongside the code itself.
	mock.ExpectExec(`UPDATE "invite_codes" SET .* WHERE code = \$\d+ AND is_used = \$\d+`).
		WithArgs(true, sqlmock.AnyArg(), "WELCOME-01", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ConsumeInviteCode(activationOrg(), "WELCOME-01")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeInviteCode_RollsBackWhenAlreadyConsumed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrganizationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "organizations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Zero rows: somebody consumed the code between validation and activation.
	mock.ExpectExec(`UPDATE "invite_codes" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ConsumeInviteCode(activationOrg(), "WELCOME-01")
	require.ErrorIs(t, err, ErrInviteCodeConsumed)
	require.NoError(t, mock.ExpectationsWereMet())
}
