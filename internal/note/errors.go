package note

import "errors"

// Status constants, in lifecycle order. The promotion engine only ever moves
// a note forward; backward transitions happen through explicit user commands.
const (
	StatusCaptured  = "captured"
	StatusTriaged   = "triaged"
	StatusRefined   = "refined"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Type constants.
const (
	TypeFleeting   = "fleeting"
	TypeLiterature = "literature"
	TypePermanent  = "permanent"
)

// Frontmatter delimiter.
const frontmatterDelimiter = "---"

// Error variables for note operations.
var (
	ErrConfigFileNotFound  = errors.New("config file not found")
	ErrConfigFileRead      = errors.New("cannot read config file")
	ErrConfigInvalid       = errors.New("invalid config file")
	ErrVaultDirEmpty       = errors.New("vault-dir cannot be empty")
	ErrScoreOutOfRange     = errors.New("score threshold must be in [0,1]")
	ErrIDGenerationFailed  = errors.New("no unique id after repeated attempts")
	ErrNoteFileExists      = errors.New("note file already exists")
	ErrNoteNotFound        = errors.New("note not found")
	ErrNoteDirNotFound     = errors.New("note directory not found")
	ErrNoFrontmatter       = errors.New("no frontmatter found")
	ErrUnclosedFrontmatter = errors.New("unclosed frontmatter")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidFieldValue   = errors.New("invalid field value")
	ErrFlagRequiresArg     = errors.New("flag requires an argument")
	ErrUnknownFlag         = errors.New("unknown flag")
)
