package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to provide reasonable UX (names should be short
	// and descriptive).
	MaxFolderNameLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	// Same as folder names for consistency.
	MaxNoteTitleLength = 255

	// MaxTagLength is the maximum length for a single note tag.
	MaxTagLength = 64

	// MaxPromptFieldLength is the maximum length for free-text fields that
	// feed study-aid prompts (statute text, contract terms, quiz subject).
	// Keeps a single generation request well under provider input limits.
	MaxPromptFieldLength = 4000
)
