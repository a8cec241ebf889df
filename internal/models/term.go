package models

// Term is a row of the categories or tags table.
type Term struct {
	TermID string `db:"term_id"`
	Name   string `db:"name"`
	Slug   string `db:"slug"`
	AuditFields
}
