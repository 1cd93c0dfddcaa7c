package service

import (
	"testing"
	"time"

	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	svc := NewUserService(
		repository.NewUserRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewQuestionRepository(db),
		NewBadgeService(repository.NewBadgeRepository(db)),
		rdb,
		time.Minute,
	)
	return svc, mock, mr
}

func TestGetOrCreateByUsernameReturnsExisting(t *testing.T) {
	svc, mock, _ := newUserService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("nova", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}).
			AddRow("u1", "nova", "Nova", 40))

	user, err := svc.GetOrCreateByUsername("nova")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, 40, user.TotalPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateByUsernameCreatesOnFirstContact(t *testing.T) {
	svc, mock, _ := newUserService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("nova", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user, err := svc.GetOrCreateByUsername("nova")
	require.NoError(t, err)
	assert.Equal(t, "nova", user.Username)
	assert.Equal(t, "nova", user.DisplayName)
	assert.Zero(t, user.TotalPoints)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardRanksAndCaches(t *testing.T) {
	svc, mock, mr := newUserService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}).
			AddRow("u1", "nova", "Nova", 120).
			AddRow("u2", "orion", "Orion", 80))

	entries, err := svc.GetLeaderboard(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "nova", entries[0].Username)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 80, entries[1].TotalPoints)

	require.True(t, mr.Exists("leaderboard:top:2"))

	// Second read is served from the cache: no further DB expectation.
	cached, err := svc.GetLeaderboard(2)
	require.NoError(t, err)
	assert.Equal(t, entries, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLeaderboardDefaultsLimit(t *testing.T) {
	svc, mock, _ := newUserService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs(util.DefaultLeaderboardLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}))

	entries, err := svc.GetLeaderboard(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPointsChangedInvalidatesCachedTopLists(t *testing.T) {
	svc, _, mr := newUserService(t)

	require.NoError(t, mr.Set("leaderboard:top:10", "[]"))
	require.NoError(t, mr.Set("leaderboard:top:25", "[]"))
	require.NoError(t, mr.Set("quiz:session:s1", "{}"))

	svc.PointsChanged("u1")

	assert.False(t, mr.Exists("leaderboard:top:10"))
	assert.False(t, mr.Exists("leaderboard:top:25"))
	assert.True(t, mr.Exists("quiz:session:s1"))
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, mock, _ := newUserService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetProfile("ghost")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
