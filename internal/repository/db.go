package repository

// scanner abstracts *sql.Row and *sql.Rows so the per-table scan helpers
// work for single-row and multi-row queries alike.
type scanner interface {
	Scan(dest ...any) error
}
