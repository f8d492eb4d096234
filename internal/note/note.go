// Package note implements the document layer of the vault: the frontmatter
// metadata schema, the on-disk markdown format, and the store that reads,
// writes, and relocates note files.
//
// A note is a markdown file with a YAML frontmatter header:
//
//	---
//	type: fleeting
//	status: captured
//	created: 2026-08-01T10:00:00Z
//	quality_score: 0.8
//	tags: [go, storage]
//	---
//	# Title
//
//	Body with [[outbound]] links.
//
// The package knows nothing about promotion rules; it only owns the format
// and the filesystem operations on it.
package note

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Metadata is the structured frontmatter header of a note.
//
// QualityScore is a pointer so that "not yet scored" is distinguishable from
// a score of zero; the scorer that sets it is an external collaborator.
type Metadata struct {
	Type         string    `yaml:"type"`
	Status       string    `yaml:"status"`
	Created      time.Time `yaml:"created"`
	Modified     time.Time `yaml:"modified,omitempty"`
	QualityScore *float64  `yaml:"quality_score,omitempty"`
	Tags         []string  `yaml:"tags,omitempty"`
	Claims       []string  `yaml:"claims,omitempty"`
	Quotes       []string  `yaml:"quotes,omitempty"`
}

// Note is a parsed note file: its path, frontmatter, and markdown body.
type Note struct {
	Path string
	Meta Metadata
	Body string
}

//nolint:gochecknoglobals // package-level constants
var (
	validStatuses = []string{StatusCaptured, StatusTriaged, StatusRefined, StatusPublished, StatusArchived}
	validTypes    = []string{TypeFleeting, TypeLiterature, TypePermanent}
)

// IsValidStatus checks if status is a known lifecycle status.
func IsValidStatus(status string) bool {
	return slices.Contains(validStatuses, status)
}

// IsValidType checks if noteType is a known note type.
func IsValidType(noteType string) bool {
	return slices.Contains(validTypes, noteType)
}

// Validate checks the metadata against the schema: known type and status,
// a created timestamp, and a quality score inside [0,1] when present.
func (m Metadata) Validate() error {
	if m.Type == "" {
		return fmt.Errorf("%w: type", ErrMissingField)
	}

	if !IsValidType(m.Type) {
		return fmt.Errorf("%w: type %q", ErrInvalidFieldValue, m.Type)
	}

	if m.Status == "" {
		return fmt.Errorf("%w: status", ErrMissingField)
	}

	if !IsValidStatus(m.Status) {
		return fmt.Errorf("%w: status %q", ErrInvalidFieldValue, m.Status)
	}

	if m.Created.IsZero() {
		return fmt.Errorf("%w: created", ErrMissingField)
	}

	if m.QualityScore != nil && (*m.QualityScore < 0 || *m.QualityScore > 1) {
		return fmt.Errorf("%w: quality_score %v (out of range)", ErrInvalidFieldValue, *m.QualityScore)
	}

	return nil
}

// Parse decodes a raw note file into frontmatter and body.
//
// The file must start with a "---" line; the header runs until the next
// "---" line and is decoded as YAML. Everything after the closing delimiter
// is the body, leading newline trimmed.
func Parse(content []byte) (Metadata, string, error) {
	text := string(content)

	lines := strings.SplitN(text, "\n", 2)
	if strings.TrimRight(lines[0], "\r") != frontmatterDelimiter {
		return Metadata{}, "", ErrNoFrontmatter
	}

	if len(lines) < 2 {
		return Metadata{}, "", ErrUnclosedFrontmatter
	}

	rest := lines[1]

	end := strings.Index(rest, "\n"+frontmatterDelimiter+"\n")
	header := ""
	body := ""

	switch {
	case end >= 0:
		header = rest[:end]
		body = rest[end+len(frontmatterDelimiter)+2:]
	case strings.HasSuffix(rest, "\n"+frontmatterDelimiter):
		header = strings.TrimSuffix(rest, "\n"+frontmatterDelimiter)
	default:
		return Metadata{}, "", ErrUnclosedFrontmatter
	}

	var meta Metadata

	err := yaml.Unmarshal([]byte(header), &meta)
	if err != nil {
		return Metadata{}, "", fmt.Errorf("%w: %w", ErrInvalidFieldValue, err)
	}

	validateErr := meta.Validate()
	if validateErr != nil {
		return Metadata{}, "", validateErr
	}

	return meta, strings.TrimPrefix(body, "\n"), nil
}

// Format serializes a note back to its on-disk representation.
func Format(n Note) ([]byte, error) {
	header, err := yaml.Marshal(n.Meta)
	if err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	var builder strings.Builder

	builder.WriteString(frontmatterDelimiter + "\n")
	builder.Write(header)
	builder.WriteString(frontmatterDelimiter + "\n")

	if n.Body != "" {
		builder.WriteString("\n")
		builder.WriteString(n.Body)

		if !strings.HasSuffix(n.Body, "\n") {
			builder.WriteString("\n")
		}
	}

	return []byte(builder.String()), nil
}

// Title returns the first markdown heading of the body, or "" if none.
func (n Note) Title() string {
	for line := range strings.Lines(n.Body) {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSpace(title)
		}
	}

	return ""
}

// Outbound link syntax: [[wiki links]] and [text](target) markdown links.
//
//nolint:gochecknoglobals // compiled once
var (
	wikiLinkRe = regexp.MustCompile(`\[\[[^\[\]]+\]\]`)
	mdLinkRe   = regexp.MustCompile(`\[[^\[\]]+\]\([^()\s]+\)`)
)

// LinkCount returns the number of outbound references in the body.
func (n Note) LinkCount() int {
	return len(wikiLinkRe.FindAllString(n.Body, -1)) + len(mdLinkRe.FindAllString(n.Body, -1))
}
