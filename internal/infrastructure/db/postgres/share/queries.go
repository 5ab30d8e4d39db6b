package share

const (
	InsertShare = `
		INSERT INTO shares (id, file_name, storage_key, max_downloads, downloads, expires_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING id, file_name, storage_key, max_downloads, downloads, expires_at, created_at
	`
	SelectShareByID = `
		SELECT id, file_name, storage_key, max_downloads, downloads, expires_at, created_at
		FROM shares
		WHERE id = $1
	`
	// The WHERE clause is the authoritative quota/expiry predicate: the row
	// is updated only while both hold, evaluated against stored state in one
	// statement. $2 is the request clock so precheck and commit share one
	// notion of "now".
	IncrementDownloads = `
		UPDATE shares
		SET downloads = downloads + 1
		WHERE id = $1 AND downloads < max_downloads AND expires_at > $2
		RETURNING downloads
	`
)
