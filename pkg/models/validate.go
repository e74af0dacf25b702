package models

import (
	"math"
	"strings"

	z "github.com/Oudwins/zog"
)

var (
	idSchema          = z.Int().Required()
	durationSchema    = z.Int().Required()
	performanceSchema = z.Float64().Required()
	nameSchema        = z.String().Required().Min(1)
)

// Validate turns raw form input into a record. Numeric fields may carry
// surrounding whitespace; the name is stored trimmed with CRLF line breaks
// folded to LF. Performance must be finite.
func Validate(raw RawInput) (MachineRecord, error) {
	var (
		id          int
		duration    int
		performance float64
		name        string
		failed      []string
	)

	if issues := idSchema.Parse(strings.TrimSpace(raw.ID), &id); len(issues) > 0 {
		failed = append(failed, "id")
	}
	if issues := nameSchema.Parse(normalizeName(raw.Name), &name); len(issues) > 0 {
		failed = append(failed, "machine")
	}
	if issues := durationSchema.Parse(strings.TrimSpace(raw.Duration), &duration); len(issues) > 0 {
		failed = append(failed, "duration")
	}
	if issues := performanceSchema.Parse(strings.TrimSpace(raw.Performance), &performance); len(issues) > 0 ||
		math.IsNaN(performance) || math.IsInf(performance, 0) {
		failed = append(failed, "performance")
	}

	if len(failed) > 0 {
		return MachineRecord{}, &ValidationError{Fields: failed}
	}

	return NewMachineRecord(id, name, duration, performance), nil
}

// normalizeName trims the name and folds CRLF to LF, since a CSV reader
// cannot tell a stored CRLF from a line ending.
func normalizeName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "\r\n", "\n"))
}
