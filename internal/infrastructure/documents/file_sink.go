package documents

import (
	"context"
	"os"
	"path/filepath"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

// FileSink persists rendered artifacts into a directory, one file per
// document.
type FileSink struct {
	dir string
	log *logger.Logger
}

func NewFileSink(dir string, log *logger.Logger) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{dir: dir, log: log}, nil
}

func (s *FileSink) Publish(ctx context.Context, doc ports.Document) error {
	path := filepath.Join(s.dir, filepath.Base(doc.Name))
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return err
	}

	s.log.Debug("Document written", "path", path, "bytes", len(doc.Body))
	return nil
}
