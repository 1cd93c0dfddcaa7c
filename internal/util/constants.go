package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	// AuthoringBonusPoints is credited to the author at creation time,
	// regardless of the later moderation outcome.
	AuthoringBonusPoints = 5

	// QuizBatchSize caps how many approved questions one session fetches.
	QuizBatchSize = 10

	// DefaultRejectionNote is recorded when a moderator rejects without a note.
	DefaultRejectionNote = "Not suitable for the question pool"

	DefaultLeaderboardLimit = 10
)

const (
	MimeImage = "image/"
)
