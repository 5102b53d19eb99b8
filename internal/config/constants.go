package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the article database
	DefaultDatabasePath = "./articlebase.db"

	// DefaultAuditDir is where imported feed payloads are archived
	DefaultAuditDir = "./audit"
)
