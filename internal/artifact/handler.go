package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
)

// saves generated documents to disk under a fixed name.
// each Save stages the bytes in a transient file that is always released
type Handler struct {
	dir      string
	filename string
	pending  atomic.Int64
}

// creates a handler writing ieee_paper.docx into dir
func New(dir string) *Handler {
	if dir == "" {
		dir = "."
	}

	return &Handler{
		dir:      dir,
		filename: generation.ArtifactFilename,
	}
}

// returns the path Save writes to
func (h *Handler) Path() string {
	return filepath.Join(h.dir, h.filename)
}

// number of transient files currently held open by Save calls
func (h *Handler) Pending() int {
	return int(h.pending.Load())
}

// writes the artifact to Path() and returns it. the name never depends on the
// artifact's content type. failures are not retried
func (h *Handler) Save(a *generation.Artifact) (path string, err error) {
	if a == nil || len(a.Data) == 0 {
		return "", fmt.Errorf("%w: nothing to save", apperrors.ErrDecode)
	}

	tmp, err := os.CreateTemp(h.dir, ".ieee_paper-*.part")
	if err != nil {
		return "", fmt.Errorf("failed to stage artifact: %w", err)
	}

	h.pending.Add(1)
	tmpPath := tmp.Name()

	// release the transient file on every path; after a successful rename
	// the remove is a no-op
	defer func() {
		tmp.Close() //nolint:errcheck,gosec // already closed on the success path
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = fmt.Errorf("failed to release staged artifact: %w", rmErr)
		}
		h.pending.Add(-1)
	}()

	if _, err := tmp.Write(a.Data); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	path = h.Path()
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", h.filename, err)
	}

	return path, nil
}
