package shared

const (
	UserID = "user_id"

	BackupObjectPrefix = "journal-backups/"
)
