package constants

const (
	CountRowsByTable = `
	SELECT table_name, COUNT(*) AS row_count FROM record_rows GROUP BY table_name
	`
)
