package intake

import (
	"time"

	"github.com/google/uuid"
)

// Submission statuses. Completed is only ever set through the explicit
// status write path used by the orthopedic review submit; it is never
// derived from the pipeline flags.
const (
	StatusPending   = "pending"
	StatusInReview  = "in_review"
	StatusCompleted = "completed"
)

// PipelineStatus tracks the four clinical workflow steps for a worker-injury
// intake. The flags are independent booleans with no ordering enforcement:
// any combination may be set or cleared in any sequence.
type PipelineStatus struct {
	HistoryComplete     bool `json:"history_complete"`
	NurseExamComplete   bool `json:"nurse_exam_complete"`
	ImagingComplete     bool `json:"imaging_complete"`
	OrthoReviewComplete bool `json:"ortho_review_complete"`
}

// CPTCode is a billing procedure code attached to a diagnosis suggestion.
type CPTCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// DiagnosisSuggestion is one entry of the ranked differential generated at
// submission time. It is stored immutably alongside the submission.
type DiagnosisSuggestion struct {
	Name       string    `json:"name"`
	ICD10      string    `json:"icd10"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
	CPTCodes   []CPTCode `json:"cptCodes"`
}

// Submission maps to the intake_submissions table. Incident, history and
// symptom fields arrive from the three-step client wizard; required-field
// enforcement happens client-side only.
type Submission struct {
	ID uuid.UUID `json:"id"`

	// Incident
	InjuryDate        string `json:"injuryDate"`
	InjuryTime        string `json:"injuryTime,omitempty"`
	Location          string `json:"location"`
	Description       string `json:"description"`
	MechanismOfInjury string `json:"mechanismOfInjury"`
	EmployerName      string `json:"employerName,omitempty"`
	ClaimNumber       string `json:"claimNumber,omitempty"`

	// History
	PreviousInjuries   string `json:"previousInjuries,omitempty"`
	CurrentMedications string `json:"currentMedications,omitempty"`
	Allergies          string `json:"allergies,omitempty"`
	MedicalHistory     string `json:"medicalHistory,omitempty"`

	// Symptoms
	PainLevel         int      `json:"painLevel"`
	Symptoms          []string `json:"symptoms"`
	AffectedBodyParts []string `json:"affectedBodyParts"`

	// Derived at creation, never recomputed.
	AIDiagnoses []DiagnosisSuggestion `json:"ai_diagnoses"`

	// Nil until a clinical staff member first toggles a flag.
	PipelineStatus *PipelineStatus `json:"pipeline_status"`

	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
