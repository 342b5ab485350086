package visit

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRecordFull(t *testing.T) {
	body := `{
		"patient_name": "Jane Doe",
		"date_of_visit": "2025-01-01",
		"notes": "cough",
		"specialty": "Pediatrics",
		"urgency": "emergency"
	}`

	rec, err := ParseRecord(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse record: %v", err)
	}
	if rec.PatientName != "Jane Doe" || rec.DateOfVisit != "2025-01-01" || rec.Notes != "cough" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Specialty != "Pediatrics" || rec.Urgency != "emergency" {
		t.Fatalf("optional fields lost: %+v", rec)
	}
}

func TestParseRecordOptionalFieldsAbsent(t *testing.T) {
	body := `{"patient_name":"Jane","date_of_visit":"2025-01-01","notes":""}`

	rec, err := ParseRecord(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse record: %v", err)
	}
	if rec.Specialty != "" || rec.Urgency != "" {
		t.Fatalf("expected empty optional fields, got %+v", rec)
	}
	// Present-but-empty notes is valid: only absence or null is rejected.
	if rec.Notes != "" {
		t.Fatalf("expected empty notes, got %q", rec.Notes)
	}
}

func TestParseRecordMissingRequiredField(t *testing.T) {
	body := `{"patient_name":"Jane","date_of_visit":"2025-01-01"}`

	_, err := ParseRecord(strings.NewReader(body))
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "notes" {
		t.Fatalf("expected notes to be reported, got %q", missing.Field)
	}
}

func TestParseRecordNullRequiredField(t *testing.T) {
	body := `{"patient_name":"Jane","date_of_visit":null,"notes":"cough"}`

	_, err := ParseRecord(strings.NewReader(body))
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "date_of_visit" {
		t.Fatalf("expected date_of_visit to be reported, got %q", missing.Field)
	}
}

func TestParseRecordMalformedJSON(t *testing.T) {
	_, err := ParseRecord(strings.NewReader(`{"patient_name": `))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestParseRecordIgnoresUnknownFields(t *testing.T) {
	body := `{"patient_name":"Jane","date_of_visit":"2025-01-01","notes":"cough","extra":123}`

	if _, err := ParseRecord(strings.NewReader(body)); err != nil {
		t.Fatalf("unknown fields should be ignored: %v", err)
	}
}
