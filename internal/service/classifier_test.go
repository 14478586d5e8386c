package service

import (
	"testing"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/validation"
)

func rosterTable(rows ...models.Record) *models.Table {
	t := models.NewTable("dni", "telefono", "email", "nombre")
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestClassifyValidRecord(t *testing.T) {
	input := rosterTable(models.Record{
		"dni":      "12345678Z",
		"telefono": "600.111.222",
		"email":    "john@example.com",
		"nombre":   "John",
	})

	batch := Classify(input)

	if batch.Valid.Len() != 1 || batch.Invalid.Len() != 0 || batch.Warnings.Len() != 0 {
		t.Fatalf("got valid=%d invalid=%d warnings=%d, want 1/0/0",
			batch.Valid.Len(), batch.Invalid.Len(), batch.Warnings.Len())
	}

	row := batch.Valid.Rows[0]
	if row[models.ColOldUser] != "1" {
		t.Errorf("old_user = %q, want \"1\"", row[models.ColOldUser])
	}
	if row[models.ColPhone] != "600111222" {
		t.Errorf("telefono = %q, want \"600111222\"", row[models.ColPhone])
	}
	if row[models.ColEmail] != "john@example.com" {
		t.Errorf("email = %q, want unchanged", row[models.ColEmail])
	}
	if row["nombre"] != "John" {
		t.Errorf("pass-through column lost: nombre = %q", row["nombre"])
	}
}

func TestClassifyValidWithEmailWarning(t *testing.T) {
	input := rosterTable(models.Record{
		"dni":      "12345678Z",
		"telefono": "600.111.222",
		"email":    "a@b@c",
	})

	batch := Classify(input)

	if batch.Valid.Len() != 1 {
		t.Fatalf("record with valid identifier must stay in the valid stream, got %d", batch.Valid.Len())
	}
	if batch.Invalid.Len() != 0 {
		t.Fatalf("record must not appear in invalid, got %d", batch.Invalid.Len())
	}
	if batch.Warnings.Len() != 1 {
		t.Fatalf("bad email on a valid identifier must warn, got %d", batch.Warnings.Len())
	}

	// The valid copy carries the sentinel address.
	if got := batch.Valid.Rows[0][models.ColEmail]; got != validation.SentinelEmail {
		t.Errorf("valid row email = %q, want sentinel %q", got, validation.SentinelEmail)
	}

	warning := batch.Warnings.Rows[0]
	if warning[models.ColOriginalEmail] != "a@b@c" {
		t.Errorf("email_original = %q, want \"a@b@c\"", warning[models.ColOriginalEmail])
	}
	wantReason := "Email: Formato de email inválido"
	if warning[models.ColWarningReason] != wantReason {
		t.Errorf("motivo_warning = %q, want %q", warning[models.ColWarningReason], wantReason)
	}
	if batch.WarningReasons[wantReason] != 1 {
		t.Errorf("warning reason frequency = %d, want 1", batch.WarningReasons[wantReason])
	}
}

func TestClassifyInvalidIdentifier(t *testing.T) {
	input := rosterTable(models.Record{
		"dni":      "12345678A",
		"telefono": "",
		"email":    "bad-email",
	})

	batch := Classify(input)

	if batch.Valid.Len() != 0 || batch.Warnings.Len() != 0 {
		t.Fatalf("invalid identifier must route to invalid only, got valid=%d warnings=%d",
			batch.Valid.Len(), batch.Warnings.Len())
	}
	if batch.Invalid.Len() != 1 {
		t.Fatalf("invalid stream length = %d, want 1", batch.Invalid.Len())
	}

	wantReason := "DNI: Letra de control incorrecta (esperado: Z); Email: Formato de email inválido"
	row := batch.Invalid.Rows[0]
	if row[models.ColInvalidReason] != wantReason {
		t.Errorf("motivo_invalido = %q, want %q", row[models.ColInvalidReason], wantReason)
	}
	if batch.InvalidReasons[wantReason] != 1 {
		t.Errorf("invalid reason frequency = %d, want 1", batch.InvalidReasons[wantReason])
	}
}

func TestClassifyPreservesOrderAndPartitions(t *testing.T) {
	input := rosterTable(
		models.Record{"dni": "12345678Z", "telefono": "", "email": "a@b.com"},
		models.Record{"dni": "invalid", "telefono": "", "email": "a@b.com"},
		models.Record{"dni": "00000000T", "telefono": "", "email": "c@d.com"},
	)

	batch := Classify(input)

	if batch.Valid.Len()+batch.Invalid.Len() != input.Len() {
		t.Errorf("every record must land in exactly one of valid/invalid: %d+%d != %d",
			batch.Valid.Len(), batch.Invalid.Len(), input.Len())
	}
	if batch.Valid.Rows[0]["dni"] != "12345678Z" || batch.Valid.Rows[1]["dni"] != "00000000T" {
		t.Error("valid stream does not preserve input order")
	}
}

func TestClassifyOutputColumns(t *testing.T) {
	input := rosterTable()
	batch := Classify(input)

	if !batch.Valid.HasColumn(models.ColOldUser) {
		t.Error("valid table missing old_user column")
	}
	if !batch.Invalid.HasColumn(models.ColInvalidReason) {
		t.Error("invalid table missing motivo_invalido column")
	}
	if !batch.Warnings.HasColumn(models.ColOriginalEmail) || !batch.Warnings.HasColumn(models.ColWarningReason) {
		t.Error("warning table missing annotation columns")
	}
}
