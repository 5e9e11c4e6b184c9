package db

// Source site objects the pipeline has catalogued

type SourceAttachment struct {
	ID       int64  `db:"id"`
	URL      string `db:"url"`
	FileName string `db:"file_name"`
	MimeType string `db:"mime_type"`
}
