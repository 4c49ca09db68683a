package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire layout of release dates.
const DateLayout = "2006-01-02"

// ErrEmptyTitle is returned when an entry is built without a title.
var ErrEmptyTitle = errors.New("catalog entry title cannot be empty")

// Entry is the provider-agnostic representation of one game listing.
// Fields are unexported so an Entry cannot change once built.
type Entry struct {
	id          string
	title       string
	description string
	releaseDate time.Time
	hasRelease  bool
}

// NewEntry builds an Entry. A nil releaseDate means the source gave none.
func NewEntry(id, title, description string, releaseDate *time.Time) (Entry, error) {
	if strings.TrimSpace(title) == "" {
		return Entry{}, ErrEmptyTitle
	}
	e := Entry{
		id:          id,
		title:       title,
		description: description,
	}
	if releaseDate != nil {
		e.releaseDate = *releaseDate
		e.hasRelease = true
	}
	return e, nil
}

func (e Entry) ID() string          { return e.id }
func (e Entry) Title() string       { return e.title }
func (e Entry) Description() string { return e.description }

// ReleaseDate reports the release date and whether one is known.
func (e Entry) ReleaseDate() (time.Time, bool) {
	return e.releaseDate, e.hasRelease
}

type entryJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleaseDate string `json:"release_date,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	out := entryJSON{
		ID:          e.id,
		Title:       e.title,
		Description: e.description,
	}
	if e.hasRelease {
		out.ReleaseDate = e.releaseDate.Format(DateLayout)
	}
	return json.Marshal(out)
}

// Result is the outcome of one aggregation pass.
type Result struct {
	Entries  []Entry
	Failures []Failure
}

// Failure records a provider skipped under PolicyBestEffort.
type Failure struct {
	Provider string
	Index    int
	Err      error
}
