package models

import "time"

// Photo is a row of the photos table.
type Photo struct {
	OwnerKind   string    `db:"owner_kind"`
	OwnerID     string    `db:"owner_id"`
	ContentType string    `db:"content_type"`
	Data        []byte    `db:"data"`
	UpdatedAt   time.Time `db:"updated_at"`
}
