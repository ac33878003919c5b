package domain

// Document is one unit of raw text (an issue body or comment body) awaiting cleaning.
// Text is nil when the upstream record carried a JSON null.
type Document struct {
	// ID is the synthetic identifier ("3" for an issue, "3_1" for a comment).
	ID string `json:"id"`

	// Text is the raw body text, possibly nil.
	Text *string `json:"text"`
}

// TextRecord is an id/text pair with non-null text.
// It is the shape of both extracted texts and kept cleaned texts.
type TextRecord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NewDocument returns a Document with a non-nil text.
func NewDocument(id, text string) Document {
	return Document{ID: id, Text: &text}
}
