package db

type Site struct {
	ID         int64  `db:"id"`
	Handle     string `db:"handle"`
	URL        string `db:"url"`
	SecretPath string `db:"secret_path"`
}
