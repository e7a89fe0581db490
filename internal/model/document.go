package model

import "time"

// Document is one node record from the document store. The analytics
// engine never mutates documents; the store owns them.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Path      string    `json:"path"`
	Space     string    `json:"space"`
	Type      string    `json:"type,omitempty"`
	Content   string    `json:"content,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	WordCount int       `json:"word_count"`
	IsStub    bool      `json:"is_stub,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Link is a directed reference between two documents. Resolved means the
// target exists as a document in the current scope.
type Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Resolved bool   `json:"resolved"`
}
