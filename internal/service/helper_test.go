package service

import (
	"testing"

	"cosmic_quiz_backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newMockDB opens gorm over a sqlmock connection. Default transactions are
// skipped so expectations match single statements.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// newLeaderboardUserService builds a UserService with no cache, so every
// leaderboard read goes to the database.
func newLeaderboardUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewQuestionRepository(db),
		NewBadgeService(repository.NewBadgeRepository(db)),
		nil, 0,
	)
}

func badgeRows(badges ...[3]interface{}) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "required_points"})
	for _, b := range badges {
		rows.AddRow(b[0], b[1], b[2])
	}
	return rows
}
