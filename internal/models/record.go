package models

// Well-known column names of the roster file. Input headers are lowercased
// before the pipeline runs, so lookups use these exact keys.
const (
	ColDNI           = "dni"
	ColPhone         = "telefono"
	ColEmail         = "email"
	ColOldUser       = "old_user"
	ColInvalidReason = "motivo_invalido"
	ColWarningReason = "motivo_warning"
	ColOriginalEmail = "email_original"
)

// Record is one row of a table: column name → raw string value. Derived
// fields (old_user, normalized telefono/email, reason columns) are added
// during classification; a record is never changed after it has been routed.
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an in-memory tabular structure with a stable column order.
// Columns absent from a row read as the empty string.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// WithColumns returns a new empty table carrying this table's columns plus
// the given extra ones (duplicates are not repeated).
func (t *Table) WithColumns(extra ...string) *Table {
	out := NewTable(t.Columns...)
	for _, col := range extra {
		if !out.HasColumn(col) {
			out.Columns = append(out.Columns, col)
		}
	}
	return out
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Append adds a row to the table.
func (t *Table) Append(r Record) {
	t.Rows = append(t.Rows, r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
