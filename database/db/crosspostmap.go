package db

import "time"

type ObjectKind string

const (
	ObjectKindPost       ObjectKind = "POST"
	ObjectKindTerm       ObjectKind = "TERM"
	ObjectKindAttachment ObjectKind = "ATTACHMENT"
)

type CrosspostMap struct {
	ID         string     `db:"id"`
	ObjectKind ObjectKind `db:"object_kind"`
	SourceID   int64      `db:"source_id"`
	SiteID     int64      `db:"site_id"`
	DestID     int64      `db:"dest_id"`
	DestURL    string     `db:"dest_url"`
	Created    time.Time  `db:"created"`
}
