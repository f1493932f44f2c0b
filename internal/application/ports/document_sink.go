package ports

import (
	"context"
)

// Document is a rendered artifact: a receipt or a period report.
type Document struct {
	Name        string
	ContentType string
	Body        []byte
}

// DocumentSink receives rendered artifacts for persistence or presentation.
// Best-effort, like the notifier.
type DocumentSink interface {
	Publish(ctx context.Context, doc Document) error
}
