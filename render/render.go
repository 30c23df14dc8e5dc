// Package render serializes the abstract document tree into concrete file
// formats. The composition core never imports it; backends are interchangeable.
package render

import "bitbucket.org/deskea/bdc_backend/models"

type Renderer interface {
	// Render serializes the document. Node order must be preserved exactly;
	// zero-row tables are kept.
	Render(doc *models.Document) ([]byte, error)

	// Extension returns the file extension produced, without the dot.
	Extension() string
}
