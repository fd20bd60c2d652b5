package extract

import (
	"strings"

	"github.com/caseatlas/caseatlas/pkg/constants"
	"github.com/caseatlas/caseatlas/pkg/normalize"
)

// Marker protocol literals. A conforming response carries both, in
// order, delimiting the answer segment from the evidence segment.
const (
	// AnswerMarker opens the answer segment.
	AnswerMarker = "|||ANSWERS|||"

	// EvidenceMarker opens the evidence segment.
	EvidenceMarker = "|||EVIDENCE|||"
)

// NoEvidence is recorded when a marker-less response carries no
// evidence segment at all.
const NoEvidence = "No supporting text returned."

// ParseMarkerResponse splits a raw marker-protocol response into padded
// answer fields and cleaned evidence lines. Parsing never fails: a
// response that defeats the marker search falls back to the first blank
// line, and any internal inconsistency degrades to sentinel values.
func ParseMarkerResponse(raw string, expectedFields int) (fields, evidence []string) {
	answers, evidenceText, ok := splitSegments(raw)
	if !ok {
		return sentinelFields(constants.SentinelError, expectedFields), []string{"Error processing output"}
	}

	fields = strings.Split(answers, "\t")
	evidence = cleanEvidenceLines(evidenceText)

	return padFields(fields, expectedFields), evidence
}

// ParseLineResponse splits a raw line-protocol response into exactly
// expectedFields answer fields: tab-split, padded, then truncated.
func ParseLineResponse(raw string, expectedFields int) []string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return sentinelFields(constants.SentinelNA, expectedFields)
	}

	fields := padFields(strings.Split(trimmed, "\t"), expectedFields)
	return fields[:expectedFields]
}

// splitSegments locates the answer and evidence segments of a raw
// response, via the markers when present, else the blank-line fallback.
// ok is false only when the markers are present but out of order.
func splitSegments(raw string) (answers, evidence string, ok bool) {
	if strings.Contains(raw, AnswerMarker) && strings.Contains(raw, EvidenceMarker) {
		_, after, _ := strings.Cut(raw, AnswerMarker)
		answers, evidence, found := strings.Cut(after, EvidenceMarker)
		if !found {
			return "", "", false
		}
		return strings.TrimSpace(answers), strings.TrimSpace(evidence), true
	}

	before, after, found := strings.Cut(raw, "\n\n")
	answers = strings.TrimSpace(before)
	if !found || strings.TrimSpace(after) == "" {
		return answers, NoEvidence, true
	}
	return answers, strings.TrimSpace(after), true
}

// cleanEvidenceLines applies evidence-line cleanup to every non-empty
// line of the evidence segment. Line i is assumed to correspond to
// field i.
func cleanEvidenceLines(segment string) []string {
	var lines []string
	for _, line := range strings.Split(segment, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, normalize.CleanEvidenceLine(line))
	}
	return lines
}

// padFields appends the NA sentinel until fields reaches expected
// length. Longer inputs are returned unchanged.
func padFields(fields []string, expected int) []string {
	for len(fields) < expected {
		fields = append(fields, constants.SentinelNA)
	}
	return fields
}

// sentinelFields builds a field vector filled with one sentinel value.
func sentinelFields(sentinel string, n int) []string {
	fields := make([]string, n)
	for i := range fields {
		fields[i] = sentinel
	}
	return fields
}
