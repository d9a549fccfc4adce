// Package uploads validates and persists attachment uploads. It never touches
// task state; clients attach the returned descriptor to a task themselves.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
)

// MaxFileSize caps a single upload at 5 MiB.
const MaxFileSize = 5 << 20

var (
	// ErrFileTooLarge is returned before any byte is durably kept.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidFileType is returned when the extension or the declared
	// content type falls outside the allow-list.
	ErrInvalidFileType = errors.New("invalid file type")
)

// allowedTypes covers images and the document formats the board accepts. Both
// the file extension and the declared content type must match.
var allowedTypes = []string{"jpeg", "jpg", "png", "gif", "pdf", "doc", "docx"}

func typeAllowed(filename, contentType string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	extOK := false
	for _, a := range allowedTypes {
		if ext == a {
			extOK = true
			break
		}
	}
	if !extOK {
		return false
	}
	ct := strings.ToLower(contentType)
	for _, a := range allowedTypes {
		if strings.Contains(ct, a) {
			return true
		}
	}
	return false
}

// Intake writes validated uploads into a flat directory. Stored names are
// disambiguated by upload timestamp, so the directory never needs nesting.
type Intake struct {
	dir string
	now func() time.Time
}

// New ensures dir exists and returns an Intake rooted there.
func New(dir string) (*Intake, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Intake{dir: dir, now: time.Now}, nil
}

// Store validates the upload and persists it under a timestamp-prefixed name.
// Nothing is left on disk when validation or the copy fails.
func (in *Intake) Store(filename, contentType string, size int64, r io.Reader) (domain.Attachment, error) {
	if size > MaxFileSize {
		return domain.Attachment{}, ErrFileTooLarge
	}
	if !typeAllowed(filename, contentType) {
		return domain.Attachment{}, ErrInvalidFileType
	}

	stored := fmt.Sprintf("%d-%s", in.now().UnixMilli(), filepath.Base(filename))
	dst := filepath.Join(in.dir, stored)
	f, err := os.Create(dst)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("create %s: %w", stored, err)
	}

	// The declared size is not trusted; the copy itself is capped too.
	n, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxFileSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(dst)
		return domain.Attachment{}, err
	}

	return domain.Attachment{
		Filename: stored,
		Path:     "/uploads/" + stored,
		Size:     n,
	}, nil
}
