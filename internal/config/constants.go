package config

const (
	// DefaultDatabasePath is the default path for the reading log database
	DefaultDatabasePath = "./books.db"

	// DefaultShareValidityDays is how long a share link stays valid when the
	// caller does not pick a validity period
	DefaultShareValidityDays = 7
)
