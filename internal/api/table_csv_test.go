package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roster-import-api/internal/models"
)

func TestParseTable(t *testing.T) {
	input := "\ufeffDNI; Telefono ;Email\n" +
		"12345678Z;600111222;a@b.com\n" +
		"X0000000T;;\n"

	table, err := ParseTable(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}

	wantCols := []string{"dni", "telefono", "email"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantCols)
	}
	for i, col := range wantCols {
		if table.Columns[i] != col {
			t.Errorf("column[%d] = %q, want %q (lowercased, trimmed, BOM dropped)", i, table.Columns[i], col)
		}
	}

	if table.Len() != 2 {
		t.Fatalf("rows = %d, want 2", table.Len())
	}
	if table.Rows[0]["dni"] != "12345678Z" {
		t.Errorf("row 0 dni = %q", table.Rows[0]["dni"])
	}
	if table.Rows[1]["email"] != "" {
		t.Errorf("missing cell should read empty, got %q", table.Rows[1]["email"])
	}
}

// brokenReader delivers a prefix and then keeps failing, like a client
// that aborted mid-upload.
type brokenReader struct {
	prefix *strings.Reader
	err    error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if r.prefix.Len() > 0 {
		return r.prefix.Read(p)
	}
	return 0, r.err
}

func TestParseTableReaderFailure(t *testing.T) {
	r := &brokenReader{
		prefix: strings.NewReader("dni;telefono;email\n12345678Z;;a@b.com\n"),
		err:    errors.New("connection reset by peer"),
	}

	done := make(chan error, 1)
	go func() {
		_, err := ParseTable(r)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Error("persistent read failure must surface as an error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ParseTable did not return on a persistent read failure")
	}
}

func TestParseTableEmptyFile(t *testing.T) {
	if _, err := ParseTable(strings.NewReader("")); err == nil {
		t.Error("empty file should be an error")
	}
}

func TestParseTableShortRow(t *testing.T) {
	table, err := ParseTable(strings.NewReader("dni;telefono;email\n12345678Z\n"))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	if table.Len() != 1 {
		t.Fatalf("rows = %d, want 1", table.Len())
	}
	if table.Rows[0]["telefono"] != "" || table.Rows[0]["email"] != "" {
		t.Error("short row should pad missing columns with empty strings")
	}
}

func TestWriteTableRoundTrip(t *testing.T) {
	table := models.NewTable("dni", "motivo_invalido")
	table.Append(models.Record{"dni": "12345678A", "motivo_invalido": "DNI: Letra de control incorrecta (esperado: Z)"})

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteTable(path, table); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "dni;motivo_invalido\n") {
		t.Errorf("header line wrong: %q", content)
	}
	if !strings.Contains(content, "12345678A") {
		t.Errorf("row missing from output: %q", content)
	}
}
