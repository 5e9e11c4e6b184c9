package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lucsky/cuid"
	"github.com/truemediaorg/crosspostfields/database/db"
)

type Database struct {
	connString string
	pool       *pgxpool.Pool
}

func NewDatabase(connString string) *Database {
	return &Database{
		connString: connString,
	}
}

func (d *Database) Connect(ctx context.Context) error {
	var err error
	d.pool, err = pgxpool.New(ctx, d.connString)
	if err != nil {
		return err
	}
	return nil
}

func (d *Database) Disconnect() {
	d.pool.Close()
}

// GetSiteByHandle returns nil if no site is registered under handle.
func (d *Database) GetSiteByHandle(ctx context.Context, handle string) (*db.Site, error) {
	rows, err := d.pool.Query(ctx, `
	SELECT
		id,
		handle,
		url,
		secret_path
	FROM site
	WHERE handle = $1`,
		handle,
	)
	if err != nil {
		return nil, err
	}
	site, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[db.Site])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return site, nil
}

// GetPostType returns "" for posts that aren't catalogued.
func (d *Database) GetPostType(ctx context.Context, postID int64) (string, error) {
	return d.queryString(ctx, `SELECT post_type FROM source_post WHERE id = $1`, postID)
}

// GetTermTaxonomy returns "" for terms that aren't catalogued.
func (d *Database) GetTermTaxonomy(ctx context.Context, termID int64) (string, error) {
	return d.queryString(ctx, `SELECT taxonomy FROM source_term WHERE id = $1`, termID)
}

// GetProductSKU returns "" for products without a SKU.
func (d *Database) GetProductSKU(ctx context.Context, postID int64) (string, error) {
	return d.queryString(ctx, `SELECT COALESCE(sku, '') FROM source_post WHERE id = $1`, postID)
}

func (d *Database) queryString(ctx context.Context, query string, args ...any) (string, error) {
	var value string
	err := d.pool.QueryRow(ctx, query, args...).Scan(&value)
	if err != nil {
		// Unknown objects aren't an error for any of our callers
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (d *Database) GetAttachment(ctx context.Context, attachmentID int64) (*db.SourceAttachment, error) {
	rows, err := d.pool.Query(ctx, `
	SELECT
		id,
		url,
		file_name,
		mime_type
	FROM source_attachment
	WHERE id = $1`,
		attachmentID,
	)
	if err != nil {
		return nil, err
	}
	attachment, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[db.SourceAttachment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return attachment, nil
}

// FindCrosspost returns the newest record of sourceID being crossposted to siteID, or nil.
func (d *Database) FindCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64) (*db.CrosspostMap, error) {
	rows, err := d.pool.Query(ctx, `
	SELECT
		id,
		object_kind,
		source_id,
		site_id,
		dest_id,
		dest_url,
		created
	FROM crosspost_map
	WHERE object_kind = $1
	  AND source_id = $2
	  AND site_id = $3
	ORDER BY created DESC
	LIMIT 1`,
		kind,
		sourceID,
		siteID,
	)
	if err != nil {
		return nil, err
	}
	mapping, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[db.CrosspostMap])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return mapping, nil
}

func (d *Database) AddCrosspost(ctx context.Context, kind db.ObjectKind, sourceID int64, siteID int64, destID int64, destURL string) error {
	// don't really care about the result, as long as this succeeds
	_, err := d.pool.Exec(ctx, `
	INSERT INTO crosspost_map (id, object_kind, source_id, site_id, dest_id, dest_url, created) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		cuid.New(),
		kind,
		sourceID,
		siteID,
		destID,
		destURL,
		time.Now().UTC(), // the DB stores timezones and assumes UTC
	)
	if err != nil {
		return err
	}
	return nil
}
