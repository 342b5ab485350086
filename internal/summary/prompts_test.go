package summary

import (
	"strings"
	"testing"

	"visitscribe/internal/visit"
)

func TestBuildSystemPromptDeterministic(t *testing.T) {
	first := BuildSystemPrompt("Cardiology", "urgent")
	second := BuildSystemPrompt("Cardiology", "urgent")
	if first != second {
		t.Fatalf("system prompt is not deterministic")
	}

	rec := visit.Record{PatientName: "Jane", DateOfVisit: "2025-01-01", Notes: "cough"}
	if BuildUserPrompt(rec) != BuildUserPrompt(rec) {
		t.Fatalf("user prompt is not deterministic")
	}
}

func TestBuildSystemPromptSpecialtyGuidance(t *testing.T) {
	prompt := BuildSystemPrompt("Cardiology", "")
	if !strings.Contains(prompt, "cardiovascular risk") {
		t.Fatalf("expected Cardiology guidance in system prompt")
	}
	if !strings.HasPrefix(prompt, baseSystemPrompt+"\n\n") {
		t.Fatalf("guidance should be appended after the base template")
	}
}

func TestBuildSystemPromptUnknownSpecialty(t *testing.T) {
	if got := BuildSystemPrompt("Unknown-XYZ", ""); got != baseSystemPrompt {
		t.Fatalf("unknown specialty should leave the base template unchanged")
	}
	// Unknown specialty with urgency: only the urgency extra is appended.
	want := baseSystemPrompt + "\n\n" + urgencyInstruction
	if got := BuildSystemPrompt("Unknown-XYZ", "urgent"); got != want {
		t.Fatalf("expected base plus urgency extra only")
	}
}

func TestBuildSystemPromptUrgencyCaseInsensitive(t *testing.T) {
	for _, urgency := range []string{"URGENT", "urgent", "Emergency", "EMERGENCY"} {
		if !strings.Contains(BuildSystemPrompt("", urgency), urgencyInstruction) {
			t.Fatalf("urgency %q should append the urgency instruction", urgency)
		}
	}
	for _, urgency := range []string{"", "routine", "soon"} {
		if strings.Contains(BuildSystemPrompt("", urgency), urgencyInstruction) {
			t.Fatalf("urgency %q should not append the urgency instruction", urgency)
		}
	}
}

func TestBuildSystemPromptExtrasOrder(t *testing.T) {
	prompt := BuildSystemPrompt("Pediatrics", "emergency")
	guidanceIdx := strings.Index(prompt, "caregiver-friendly")
	urgencyIdx := strings.Index(prompt, urgencyInstruction)
	if guidanceIdx < 0 || urgencyIdx < 0 {
		t.Fatalf("expected both extras in prompt")
	}
	if guidanceIdx > urgencyIdx {
		t.Fatalf("specialty guidance must precede the urgency instruction")
	}
}

func TestBuildUserPromptNotesVerbatim(t *testing.T) {
	notes := "## headache\n\n* worse at night\n\n`BP 140/90` **follow up**"
	rec := visit.Record{PatientName: "Jane Doe", DateOfVisit: "2025-01-01", Notes: notes}

	prompt := BuildUserPrompt(rec)
	if !strings.Contains(prompt, notes) {
		t.Fatalf("notes must pass through unmodified:\n%s", prompt)
	}
}

func TestBuildUserPromptDefaults(t *testing.T) {
	rec := visit.Record{PatientName: "Jane", DateOfVisit: "2025-01-01", Notes: "cough"}
	prompt := BuildUserPrompt(rec)

	if !strings.Contains(prompt, "Specialty (if any): General Practice") {
		t.Fatalf("absent specialty should render as General Practice")
	}
	if !strings.Contains(prompt, "Urgency (if any): routine") {
		t.Fatalf("absent urgency should render as routine")
	}

	rec.Specialty = "Dermatology"
	rec.Urgency = "urgent"
	prompt = BuildUserPrompt(rec)
	if !strings.Contains(prompt, "Specialty (if any): Dermatology") || !strings.Contains(prompt, "Urgency (if any): urgent") {
		t.Fatalf("provided specialty/urgency should render verbatim:\n%s", prompt)
	}
}
