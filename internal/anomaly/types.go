// Package anomaly defines the anomaly-type and severity enumerations and the
// static explanation/followup template registry. It is intentionally
// dependency-free: it imports nothing from internal/ and can be tested
// without a database.
package anomaly

// Type is the behavioural anomaly classification produced by the upstream
// detection subsystem. Unrecognised strings parse to TypeUnknown — an
// explicit variant, not an error — so adding a new type requires a
// compile-time-visible update to every switch over Type.
type Type string

const (
	TypeOffScreenGaze         Type = "off_screen_gaze"
	TypeObjectPhone           Type = "object_phone"
	TypeObjectPaper           Type = "object_paper"
	TypeMultiPerson           Type = "multi_person"
	TypeFaceAbsence           Type = "face_absence"
	TypeExcessiveHeadMovement Type = "excessive_head_movement"

	// TypeUnknown is the variant for any string the enumeration does not
	// cover. Lookups against it take the fallback path — never an error.
	TypeUnknown Type = ""
)

// ParseType maps a raw anomaly-type string to its enum variant.
// Unrecognised input returns TypeUnknown.
func ParseType(s string) Type {
	switch Type(s) {
	case TypeOffScreenGaze, TypeObjectPhone, TypeObjectPaper,
		TypeMultiPerson, TypeFaceAbsence, TypeExcessiveHeadMovement:
		return Type(s)
	default:
		return TypeUnknown
	}
}

// Known reports whether t is a recognised anomaly type.
func (t Type) Known() bool {
	return t != TypeUnknown
}

// Severity is the ordinal classification of an anomaly's significance.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity maps a raw severity string to its enum value. Unrecognised
// input is treated as low — the detector writes these rows, so anything
// else indicates a schema drift we downgrade rather than reject.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s)
	default:
		return SeverityLow
	}
}
