package summary

// prompts.go holds the fixed prompt templates for the visit summary. The
// model is instructed to return exactly three markdown sections; the embedded
// examples pin the expected layout down to the newlines.

import (
	"fmt"
	"strings"

	"visitscribe/internal/visit"
)

const baseSystemPrompt = `You are a medical scribe assisting a GP.

You MUST ALWAYS return exactly THREE sections, in THIS order, in markdown:

### Summary of visit for the doctor's records
**Patient name:** {patient_name}
**Date of visit:** {date_of_visit}
**Chief complaint / reason for visit:** ...
**Exam / key findings:** ...
**Assessment / impression:** ...
**Plan today:** ...
**Clinical summary:** 3–6 sentences summarising the case.

Here is an example of the FIRST SECTION formatted correctly with **strict** newlines and markdown format:

### Summary of visit for the doctor's records
**Patient name:** Holly Fortescue
**Date of visit:** 2025-10-31
**Chief complaint / reason for visit:** Low libido, poor sleep, high stress, rapid mood swings.
**Exam / key findings:** High blood pressure; inflamed thyroid; history of prolonged corticosteroid use for eczema.
**Assessment / impression:** Possible endocrine disruption from past corticosteroid treatment and possible underlying comorbidities.
**Plan today:** Refer to a local endocrinologist; follow-up scheduled for 14 November 2025.

**Clinical summary:** Holly Fortescue presented with low libido, energy, and sleep issues, along with mood fluctuations. Examination revealed high blood pressure and an inflamed thyroid. Considering her long corticosteroid history, endocrine disruption is suspected. She has been referred to an endocrinologist for further evaluation and a follow-up is booked.

---

### Next steps for the doctor
1. ...
2. ...
3. ...

Use a short, numbered list (1., 2., 3., …). 3–7 items max.
If the visit was marked urgent or emergency, item 1 MUST say it is urgent and give a concrete timeframe (e.g. “within 24–48h”).

Here is an example of the SECOND SECTION formatted correctly:

### Next steps for the doctor
1. This is an urgent case; follow up with the endocrinologist within 24–48 hours.
2. Review baseline labs (metabolic / thyroid / adrenal) once received.
3. Ensure patient attends the 14 November 2025 follow-up.

---

### Draft of email to patient in patient-friendly language
Start with: “Dear {patient_name},”
Use short paragraphs, separated by blank lines.
Do NOT use bullet points in the email.
End with “Warm regards,” and a placeholder line like “[Clinic/Doctor Name]”.

Here is an example of the THIRD SECTION formatted correctly:

### Draft of email to patient in patient-friendly language

**To:** <Patient Email>
**Subject:** Follow-up from your visit on {date_of_visit}

Dear Holly,

Thank you for visiting our clinic today. I understand you have been dealing with low libido, poor sleep, high stress, and mood swings, which can be challenging.

Because your blood pressure was high and your thyroid seemed inflamed, we are arranging a referral to a local endocrinologist so you can have a thorough hormone and metabolic evaluation.

We will also see you again on 14 November 2025 to review any results and see how you are doing. Please contact us sooner if you experience severe symptoms such as chest pain, shortness of breath, or vision changes.

Warm regards,

[Clinic/Doctor Name]`

// specialtyGuidance maps a closed set of specialty names to an extra system
// prompt paragraph. Read-only after process start.
var specialtyGuidance = map[string]string{
	"Cardiology":    "Emphasise cardiovascular risk, blood pressure control, medication adherence, and follow-up for ordered tests.",
	"Pediatrics":    "Use caregiver-friendly wording, include red flags for parents, mention immunisation follow-up if relevant.",
	"Psychiatry":    "Use an empathetic tone, mention safety/risk follow-up, keep language warm and stigma-free.",
	"Dermatology":   "Include topical/medication instructions in Next steps; mention re-review if no improvement.",
	"Endocrinology": "Highlight metabolic/thyroid/adrenal/hormone labs and specify follow-up windows for results.",
}

const urgencyInstruction = "This case was marked URGENT. In 'Next steps for the doctor', the FIRST item must say the case is urgent and give a concrete timeframe (e.g. within 24–48h)."

const (
	defaultSpecialty = "General Practice"
	defaultUrgency   = "routine"
)

const userPromptFormat = `Patient Name: %s
Date of Visit: %s
Specialty (if any): %s
Urgency (if any): %s

Doctor's raw notes:
%s

Follow the required 3-section markdown format exactly.
`

// BuildSystemPrompt returns the base instruction template, extended with the
// specialty guidance paragraph (if the specialty is known) and the urgency
// instruction (if urgency is "urgent" or "emergency", any case). Extras are
// joined with blank lines, specialty first. Unknown values are ignored.
func BuildSystemPrompt(specialty, urgency string) string {
	extras := make([]string, 0, 2)

	if guidance, ok := specialtyGuidance[specialty]; ok {
		extras = append(extras, guidance)
	}

	switch strings.ToLower(urgency) {
	case "urgent", "emergency":
		extras = append(extras, urgencyInstruction)
	}

	if len(extras) == 0 {
		return baseSystemPrompt
	}
	return baseSystemPrompt + "\n\n" + strings.Join(extras, "\n\n")
}

// BuildUserPrompt renders the fixed-layout visit block. Notes pass through
// byte-for-byte; absent specialty/urgency are rendered with their defaults
// without touching the record itself.
func BuildUserPrompt(rec visit.Record) string {
	specialty := rec.Specialty
	if specialty == "" {
		specialty = defaultSpecialty
	}
	urgency := rec.Urgency
	if urgency == "" {
		urgency = defaultUrgency
	}
	return fmt.Sprintf(userPromptFormat, rec.PatientName, rec.DateOfVisit, specialty, urgency, rec.Notes)
}
