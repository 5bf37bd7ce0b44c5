package ports

import "io"

// SpreadsheetWriter escribe una tabla (cabecera + filas) como libro XLSX.
type SpreadsheetWriter interface {
	WriteTable(w io.Writer, sheet string, headers []string, rows [][]interface{}) error
}
