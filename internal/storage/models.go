package storage

import (
	"encoding/json"
	"time"
)

// Content is the structured payload the embedded rich-text editor produces on
// save. The store treats it as opaque beyond what preview rendering needs: a
// flat text stream plus run/paragraph annotations and page-style metadata.
type Content struct {
	Body      Body      `json:"body"`
	PageStyle PageStyle `json:"pageStyle"`
}

// Body is the document's text stream with editor annotations. Runs and
// paragraphs are preserved verbatim; only the text stream is interpreted
// (newlines act as paragraph-break markers for preview extraction).
type Body struct {
	Text       string            `json:"text"`
	Runs       []json.RawMessage `json:"runs"`
	Paragraphs []json.RawMessage `json:"paragraphs"`
}

// PageStyle carries the page geometry the editor needs to restore layout.
type PageStyle struct {
	PageSize PageSize `json:"pageSize"`
	Margins  Margins  `json:"margins"`
}

// PageSize is the logical page dimensions in points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Margins are the page margins in points.
type Margins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// DefaultContent returns the empty document skeleton: no text, no runs or
// paragraphs, US Letter geometry with one-inch margins.
func DefaultContent() *Content {
	return &Content{
		Body: Body{
			Text:       "",
			Runs:       []json.RawMessage{},
			Paragraphs: []json.RawMessage{},
		},
		PageStyle: PageStyle{
			PageSize: PageSize{Width: 612, Height: 792},
			Margins:  Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		},
	}
}

// DocumentMeta is the metadata summary persisted separately from content.
// Size is always the byte length of the serialized content at last write.
// An empty FolderID means the document lives at the root.
type DocumentMeta struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	FolderID   string    `json:"folderId,omitempty"`
}

// Document is the full content+metadata record returned by Get.
type Document struct {
	DocumentMeta
	Content *Content `json:"content"`
}

// Folder is a folder record. DocumentCount is a denormalized cache of the
// number of documents whose FolderID references this folder; it is reconciled
// on folder fetch and after moves.
type Folder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID string    `json:"parentFolderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	ModifiedAt     time.Time `json:"modifiedAt"`
	DocumentCount  int       `json:"documentCount"`
}
