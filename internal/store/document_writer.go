package store

import "passvault/internal/domain"

// DocumentFileWriter writes standalone documents such as exports. The
// encoding follows the destination's extension.
type DocumentFileWriter struct{}

// WriteDocument atomically writes v to path. The parent directory must exist.
func (DocumentFileWriter) WriteDocument(path string, v any) error {
	return ioFailure(writeDocument(path, v, fileMode), "write document %s", path)
}

// Compile-time assertion that DocumentFileWriter implements domain.DocumentWriter.
var _ domain.DocumentWriter = DocumentFileWriter{}
