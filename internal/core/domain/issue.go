package domain

import "encoding/json"

// Issue is one scraped issue with its comment thread, in the GraphQL node shape.
type Issue struct {
	// ID is the synthetic identifier assigned after filtering ("0", "1", ...).
	ID string `json:"id,omitempty"`

	Title     string           `json:"title"`
	BodyText  string           `json:"bodyText"`
	CreatedAt string           `json:"createdAt"`
	Labels    *LabelConnection `json:"labels,omitempty"`

	// Author is nil for deleted accounts and empty for non-user actors (bots).
	Author *Author `json:"author"`

	Comments *CommentConnection `json:"comments,omitempty"`
}

// Comment is one comment on an issue.
type Comment struct {
	ID        string  `json:"id,omitempty"`
	BodyText  string  `json:"bodyText"`
	CreatedAt string  `json:"createdAt"`
	Author    *Author `json:"author"`
}

// LabelConnection wraps the label nodes of an issue.
type LabelConnection struct {
	Nodes []Label `json:"nodes"`
}

// Label is an issue label.
type Label struct {
	Name string `json:"name"`
}

// CommentConnection wraps the comment nodes of an issue.
type CommentConnection struct {
	Nodes []Comment `json:"nodes"`
}

// CommentNodes returns the issue's comments, or nil if it has none.
func (i *Issue) CommentNodes() []Comment {
	if i.Comments == nil {
		return nil
	}
	return i.Comments.Nodes
}

// Author is the actor behind an issue or comment.
// The GraphQL query only selects fields on User, so bots and apps decode to
// an empty Author.
type Author struct {
	Login    string  `json:"login,omitempty"`
	Location *string `json:"location"`

	// StandardisedLocation is the country code mapped from Location, nil if unmapped.
	StandardisedLocation *string `json:"standardised_location,omitempty"`
}

// IsBot reports whether the author is a non-user actor.
func (a *Author) IsBot() bool {
	return a != nil && a.Login == "" && a.Location == nil
}

// RawLocation returns the free-text location, or "" if absent.
func (a *Author) RawLocation() string {
	if a == nil || a.Location == nil {
		return ""
	}
	return *a.Location
}

// MarshalJSON encodes non-user actors as an empty object.
func (a Author) MarshalJSON() ([]byte, error) {
	if a.IsBot() {
		return []byte("{}"), nil
	}
	type plain Author
	return json.Marshal(plain(a))
}
