package legalpad

import (
	"strings"
	"time"
)

// NoteColor is a presentation label drawn from a fixed palette.
type NoteColor string

const (
	ColorYellow NoteColor = "yellow"
	ColorBlue   NoteColor = "blue"
	ColorGreen  NoteColor = "green"
	ColorPink   NoteColor = "pink"
	ColorPurple NoteColor = "purple"
)

// DefaultColor is assigned to newly created notes.
const DefaultColor = ColorYellow

// Palette lists every valid note color in display order.
var Palette = []NoteColor{ColorYellow, ColorBlue, ColorGreen, ColorPink, ColorPurple}

// Valid reports whether c is a member of the palette.
func (c NoteColor) Valid() bool {
	for _, p := range Palette {
		if c == p {
			return true
		}
	}
	return false
}

// UntitledNote is the display placeholder for notes with an empty title.
const UntitledNote = "Untitled Note"

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `json:"tags"`
	Color     NoteColor `json:"color"`
}

// DisplayTitle returns the title, or the placeholder when the title is blank.
func (n *Note) DisplayTitle() string {
	if strings.TrimSpace(n.Title) == "" {
		return UntitledNote
	}
	return n.Title
}

// NormalizeTags trims each tag, collapses duplicates, and drops blanks,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
