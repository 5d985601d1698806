package anomaly

// Explanation templates, one per recognised type. The %-verbs are filled by
// the explain package, which knows which metric keys each type reads.
// Defined at init, never mutated — safe for unsynchronised concurrent reads.
const (
	tplOffScreenGaze = "The candidate was looking away from the screen for %s of the last %s. " +
		"This may indicate they were reading from notes, looking at another device, or distracted."

	tplObjectPhone = "A phone or mobile device was detected in the candidate's hands or nearby for %.1f seconds. " +
		"This could indicate they were using the device during the interview."

	tplObjectPaper = "Printed materials (paper or book) were visible for %.1f seconds. " +
		"This may indicate the candidate was referencing notes or documents."

	tplMultiPerson = "Another person was detected entering the frame %d times. " +
		"This could be someone assisting the candidate or an environmental factor."

	tplFaceAbsence = "The candidate left the frame for %.1f seconds. " +
		"This could indicate they stood up, moved away, or there was a technical issue."

	tplHeadMovement = "Unusual head movement patterns were detected (yaw σ=%.1f°, pitch σ=%.1f°). " +
		"This may indicate nervousness, reading from multiple sources, or restlessness."

	// FallbackTemplate embeds the literal anomaly-type string for types the
	// registry does not recognise. Unknown-type lookup is a defined,
	// non-failing path.
	FallbackTemplate = "An anomaly of type '%s' was detected. Please review the session data."
)

// GenericFollowup is the single followup question returned for types without
// a curated question set.
const GenericFollowup = "Can you provide context for this flag?"

// TemplateFor returns the explanation template for t. Unknown types get the
// fallback template; the caller substitutes the literal type string into it.
func TemplateFor(t Type) string {
	switch t {
	case TypeOffScreenGaze:
		return tplOffScreenGaze
	case TypeObjectPhone:
		return tplObjectPhone
	case TypeObjectPaper:
		return tplObjectPaper
	case TypeMultiPerson:
		return tplMultiPerson
	case TypeFaceAbsence:
		return tplFaceAbsence
	case TypeExcessiveHeadMovement:
		return tplHeadMovement
	case TypeUnknown:
		return FallbackTemplate
	default:
		return FallbackTemplate
	}
}

// Followups returns the suggested interviewer followup questions for t.
// Five types have curated 3-question sets; everything else (including
// excessive_head_movement, which never had a curated set) gets the single
// generic question. The returned slice is freshly allocated — callers may
// append to it.
func Followups(t Type) []string {
	switch t {
	case TypeOffScreenGaze:
		return []string{
			"Can you describe your workspace setup?",
			"Were you referencing any materials during the interview?",
			"Did you experience any technical difficulties?",
		}
	case TypeObjectPhone:
		return []string{
			"Were you using your phone for anything during the interview?",
			"Do you recall checking your phone at any point?",
			"Was there an emergency or important notification?",
		}
	case TypeObjectPaper:
		return []string{
			"Were you referencing notes or documentation during the interview?",
			"Can you describe what materials you had with you?",
			"Did you prepare written notes beforehand?",
		}
	case TypeMultiPerson:
		return []string{
			"Was anyone else present during your interview?",
			"Did anyone enter your space during the session?",
			"Can you describe your interview environment?",
		}
	case TypeFaceAbsence:
		return []string{
			"Did you need to step away at any point?",
			"Were there any technical issues with your camera?",
			"Did you experience any interruptions?",
		}
	default:
		return []string{GenericFollowup}
	}
}
