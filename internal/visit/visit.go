package visit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var ErrMalformedPayload = errors.New("malformed payload")

// MissingFieldError reports a required field that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Record is one clinical visit as submitted by the caller. It lives for the
// duration of a single request and is never persisted.
type Record struct {
	PatientName string
	DateOfVisit string
	Notes       string
	Specialty   string
	Urgency     string
}

// payload mirrors the wire format. Pointers distinguish an absent or null
// field from an empty string.
type payload struct {
	PatientName *string `json:"patient_name"`
	DateOfVisit *string `json:"date_of_visit"`
	Notes       *string `json:"notes"`
	Specialty   *string `json:"specialty"`
	Urgency     *string `json:"urgency"`
}

// ParseRecord decodes a visit payload and enforces the required-field
// contract: patient_name, date_of_visit and notes must be present and
// non-null. Unknown fields are ignored; specialty and urgency stay empty
// when absent.
func ParseRecord(r io.Reader) (Record, error) {
	var p payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	required := []struct {
		name  string
		value *string
	}{
		{"patient_name", p.PatientName},
		{"date_of_visit", p.DateOfVisit},
		{"notes", p.Notes},
	}
	for _, f := range required {
		if f.value == nil {
			return Record{}, &MissingFieldError{Field: f.name}
		}
	}

	rec := Record{
		PatientName: *p.PatientName,
		DateOfVisit: *p.DateOfVisit,
		Notes:       *p.Notes,
	}
	if p.Specialty != nil {
		rec.Specialty = *p.Specialty
	}
	if p.Urgency != nil {
		rec.Urgency = *p.Urgency
	}
	return rec, nil
}
