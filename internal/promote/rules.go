package promote

import (
	"fmt"

	"zet/internal/note"
)

// Verdict is the result of applying an eligibility rule to a note.
type Verdict struct {
	Eligible bool
	Reason   string
}

// Thresholds holds the configurable score cutoffs for the score-gated rules.
type Thresholds struct {
	FleetingScore  float64
	PermanentScore float64
}

// Evaluate applies the eligibility rule matching the note's type.
//
// The rules are pure: they read the note snapshot and decide, with no
// filesystem access. The type set is small, fixed, and domain-defined, so
// dispatch is an explicit switch rather than anything open-ended.
func Evaluate(n note.Note, th Thresholds) Verdict {
	switch n.Meta.Type {
	case note.TypeFleeting:
		return evaluateFleeting(n, th.FleetingScore)
	case note.TypeLiterature:
		return evaluateLiterature(n)
	case note.TypePermanent:
		return evaluatePermanent(n, th.PermanentScore)
	default:
		return Verdict{Reason: fmt.Sprintf("unsupported note type %q", n.Meta.Type)}
	}
}

// evaluateFleeting gates on quality score and on having at least one
// outbound link: an unconnected fleeting note has nowhere to go in the
// refined graph yet.
func evaluateFleeting(n note.Note, threshold float64) Verdict {
	score := n.Meta.QualityScore
	if score == nil {
		return Verdict{Reason: "not yet scored"}
	}

	if *score < threshold {
		return Verdict{Reason: fmt.Sprintf("quality score %.2f below threshold %.2f", *score, threshold)}
	}

	if n.LinkCount() == 0 {
		return Verdict{Reason: "no outbound links"}
	}

	return Verdict{Eligible: true, Reason: "scored and linked"}
}

// evaluateLiterature gates on content completeness only. A literature note
// with a captured claim or quote is worth refining regardless of score, and
// an absent score never blocks it.
func evaluateLiterature(n note.Note) Verdict {
	if len(n.Meta.Claims) == 0 && len(n.Meta.Quotes) == 0 {
		return Verdict{Reason: "no claims or quotes"}
	}

	return Verdict{Eligible: true, Reason: "has claims or quotes"}
}

// minPermanentTags is how many tags a permanent note needs before publishing.
const minPermanentTags = 2

// evaluatePermanent gates on quality score and tag coverage.
func evaluatePermanent(n note.Note, threshold float64) Verdict {
	score := n.Meta.QualityScore
	if score == nil {
		return Verdict{Reason: "not yet scored"}
	}

	if *score < threshold {
		return Verdict{Reason: fmt.Sprintf("quality score %.2f below threshold %.2f", *score, threshold)}
	}

	if got := len(n.Meta.Tags); got < minPermanentTags {
		return Verdict{Reason: fmt.Sprintf("needs at least %d tags, has %d", minPermanentTags, got)}
	}

	return Verdict{Eligible: true, Reason: "scored and tagged"}
}
