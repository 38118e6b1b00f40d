package intake

import (
	"fmt"
	"math"
	"strings"
)

// SuggestionInput is the slice of a submission the suggestion engine reads.
type SuggestionInput struct {
	Symptoms          []string
	AffectedBodyParts []string
	PainLevel         int
	MechanismOfInjury string
}

const maxConfidence = 0.95

// candidate is one row of the static differential table.
type candidate struct {
	name           string
	icd10          string
	baseConfidence float64
	cptCodes       []CPTCode
}

// diagnosisTable maps a body-part tag to its fixed, ordered differential.
// Only the first submitted body part drives the lookup; secondary body parts
// are ignored for selection.
var diagnosisTable = map[string][]candidate{
	"Shoulder": {
		{"Rotator Cuff Strain", "S46.011A", 0.85, []CPTCode{
			{"73030", "X-ray, shoulder, complete"},
			{"97110", "Therapeutic exercises"},
		}},
		{"Shoulder Impingement Syndrome", "M75.40", 0.72, []CPTCode{
			{"20610", "Arthrocentesis, major joint"},
			{"97140", "Manual therapy techniques"},
		}},
		{"AC Joint Sprain", "S43.50XA", 0.58, []CPTCode{
			{"73050", "X-ray, acromioclavicular joints"},
			{"29240", "Strapping, shoulder"},
		}},
		{"Glenohumeral Dislocation", "S43.006A", 0.41, []CPTCode{
			{"23650", "Closed treatment of shoulder dislocation"},
			{"73030", "X-ray, shoulder, complete"},
		}},
	},
	"Lower Back": {
		{"Lumbar Strain", "S39.012A", 0.84, []CPTCode{
			{"72100", "X-ray, lumbosacral spine"},
			{"97110", "Therapeutic exercises"},
		}},
		{"Lumbar Disc Herniation", "M51.26", 0.69, []CPTCode{
			{"72148", "MRI, lumbar spine, without contrast"},
			{"62323", "Epidural injection, lumbar"},
		}},
		{"Sciatica", "M54.30", 0.55, []CPTCode{
			{"97112", "Neuromuscular reeducation"},
			{"72148", "MRI, lumbar spine, without contrast"},
		}},
		{"Lumbar Spinal Stenosis", "M48.061", 0.38, []CPTCode{
			{"72131", "CT, lumbar spine, without contrast"},
			{"62323", "Epidural injection, lumbar"},
		}},
	},
	"Knee": {
		{"Meniscal Tear", "S83.209A", 0.81, []CPTCode{
			{"73721", "MRI, knee, without contrast"},
			{"29881", "Knee arthroscopy with meniscectomy"},
		}},
		{"MCL Sprain", "S83.411A", 0.70, []CPTCode{
			{"73560", "X-ray, knee"},
			{"29540", "Strapping, knee"},
		}},
		{"ACL Tear", "S83.511A", 0.57, []CPTCode{
			{"73721", "MRI, knee, without contrast"},
			{"29888", "ACL reconstruction, arthroscopic"},
		}},
		{"Patellofemoral Pain Syndrome", "M22.2X1", 0.42, []CPTCode{
			{"97110", "Therapeutic exercises"},
			{"97116", "Gait training therapy"},
		}},
	},
	"Wrist": {
		{"Wrist Sprain", "S63.501A", 0.83, []CPTCode{
			{"73100", "X-ray, wrist"},
			{"29260", "Strapping, wrist"},
		}},
		{"Distal Radius Fracture", "S52.501A", 0.66, []CPTCode{
			{"73100", "X-ray, wrist"},
			{"25600", "Closed treatment of distal radius fracture"},
		}},
		{"Carpal Tunnel Syndrome", "G56.01", 0.54, []CPTCode{
			{"95909", "Nerve conduction study"},
			{"20526", "Carpal tunnel injection"},
		}},
		{"Scaphoid Fracture", "S62.001A", 0.40, []CPTCode{
			{"73100", "X-ray, wrist"},
			{"25622", "Closed treatment of scaphoid fracture"},
		}},
	},
	"Neck": {
		{"Cervical Strain", "S16.1XXA", 0.82, []CPTCode{
			{"72040", "X-ray, cervical spine"},
			{"97110", "Therapeutic exercises"},
		}},
		{"Cervical Radiculopathy", "M54.12", 0.68, []CPTCode{
			{"72141", "MRI, cervical spine, without contrast"},
			{"97112", "Neuromuscular reeducation"},
		}},
		{"Whiplash Injury", "S13.4XXA", 0.56, []CPTCode{
			{"72040", "X-ray, cervical spine"},
			{"97140", "Manual therapy techniques"},
		}},
		{"Cervical Disc Displacement", "M50.20", 0.39, []CPTCode{
			{"72141", "MRI, cervical spine, without contrast"},
			{"62321", "Epidural injection, cervical"},
		}},
	},
}

// defaultDiagnoses is returned when no body parts were submitted or the
// primary body part is not in the table.
var defaultDiagnoses = []candidate{
	{"Musculoskeletal Strain", "M62.838", 0.75, []CPTCode{
		{"99203", "Office visit, new patient"},
		{"97110", "Therapeutic exercises"},
	}},
	{"Soft Tissue Contusion", "T14.8XXA", 0.60, []CPTCode{
		{"99203", "Office visit, new patient"},
		{"97010", "Hot or cold pack therapy"},
	}},
	{"Joint Sprain, Unspecified", "T14.3XXA", 0.50, []CPTCode{
		{"99203", "Office visit, new patient"},
		{"29240", "Strapping"},
	}},
	{"Soft Tissue Injury, Unspecified", "M79.9", 0.35, []CPTCode{
		{"99203", "Office visit, new patient"},
	}},
}

// SuggestDiagnoses produces the ranked 4-entry differential for a submission.
// Selection uses only the first affected body part. Confidence is adjusted
// multiplicatively (pain level, then symptom count), capped at 0.95 after
// each step, and rounded to 2 decimal places. The table order is preserved:
// no re-sort happens after adjustment, so equal adjusted confidences keep
// their original rank.
func SuggestDiagnoses(in SuggestionInput) []DiagnosisSuggestion {
	candidates := defaultDiagnoses
	if len(in.AffectedBodyParts) > 0 {
		if list, ok := diagnosisTable[in.AffectedBodyParts[0]]; ok {
			candidates = list
		}
	}

	suggestions := make([]DiagnosisSuggestion, 0, 4)
	for rank, cand := range candidates {
		if rank >= 4 {
			break
		}
		conf := cand.baseConfidence
		if in.PainLevel >= 7 {
			conf = math.Min(conf*1.10, maxConfidence)
		}
		if len(in.Symptoms) >= 3 {
			conf = math.Min(conf*1.05, maxConfidence)
		}
		conf = math.Round(conf*100) / 100

		suggestions = append(suggestions, DiagnosisSuggestion{
			Name:       cand.name,
			ICD10:      cand.icd10,
			Confidence: conf,
			Reasoning:  reasoningFor(rank, in),
			CPTCodes:   cand.cptCodes,
		})
	}
	return suggestions
}

// reasoningFor returns the fixed template for a rank position. Missing
// inputs interpolate as empty strings, matching the permissive behavior of
// the intake form (nothing is validated server-side).
func reasoningFor(rank int, in SuggestionInput) string {
	switch rank {
	case 0:
		symptoms := in.Symptoms
		if len(symptoms) > 2 {
			symptoms = symptoms[:2]
		}
		return fmt.Sprintf(
			"Primary consideration given %s involvement with pain level %d/10 and reported %s.",
			strings.Join(in.AffectedBodyParts, ", "),
			in.PainLevel,
			strings.Join(symptoms, " and "),
		)
	case 1:
		return "Secondary consideration based on the mechanism of injury and overall symptom pattern."
	case 2:
		return "Differential to rule out with imaging and physical examination."
	default:
		return "Less likely given the presentation, but included for completeness."
	}
}
