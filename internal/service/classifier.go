package service

import (
	"strings"

	"github.com/roster-import-api/internal/models"
	"github.com/roster-import-api/internal/validation"
)

// Classify runs every row of the input table through the field validators
// and routes it into the valid, invalid and warning streams. Row order is
// preserved in all three outputs.
//
// Routing rule: an invalid identifier sends the row to the invalid stream
// only. A valid identifier with a bad email keeps the row in the valid
// stream (it still gets persisted) and adds an annotated copy to warnings.
func Classify(input *models.Table) *models.ClassifiedBatch {
	batch := &models.ClassifiedBatch{
		Valid:          input.WithColumns(models.ColOldUser),
		Invalid:        input.WithColumns(models.ColOldUser, models.ColInvalidReason),
		Warnings:       input.WithColumns(models.ColOldUser, models.ColOriginalEmail, models.ColWarningReason),
		InvalidReasons: make(map[string]int),
		WarningReasons: make(map[string]int),
	}

	for _, row := range input.Rows {
		// Mark provenance: every record of this pipeline is a legacy member.
		row[models.ColOldUser] = "1"
		row[models.ColPhone] = validation.NormalizePhone(row[models.ColPhone])

		identifier := validation.ValidateIdentifier(row[models.ColDNI])
		email := validation.NormalizeEmail(row[models.ColEmail])
		// The normalized (or sentinel) address always replaces the field.
		row[models.ColEmail] = email.Normalized

		if !identifier.Valid {
			invalid := row.Clone()
			reasons := []string{"DNI: " + identifier.Reason}
			if !email.Valid {
				reasons = append(reasons, "Email: "+email.Reason)
			}
			reason := strings.Join(reasons, "; ")
			invalid[models.ColInvalidReason] = reason
			batch.Invalid.Append(invalid)
			batch.InvalidReasons[reason]++
			continue
		}

		batch.Valid.Append(row)

		if !email.Valid {
			warning := row.Clone()
			warning[models.ColOriginalEmail] = email.Original
			reason := "Email: " + email.Reason
			warning[models.ColWarningReason] = reason
			batch.Warnings.Append(warning)
			batch.WarningReasons[reason]++
		}
	}

	return batch
}
