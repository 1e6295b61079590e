package artifact

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "codeberg.org/papergen/server/internal/errors"
	"codeberg.org/papergen/server/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_WritesFixedFilename(t *testing.T) {
	dir := t.TempDir()
	h := New(dir)

	path, err := h.Save(&generation.Artifact{
		Data:        []byte("%PDF-1.7 pretend"),
		ContentType: "application/pdf",
		Filename:    "research_paper.pdf",
	})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ieee_paper.docx"), path, "name ignores content type and sent filename")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 pretend", string(data))
}

func TestSave_ReleasesTransientFileAcrossRepeatedSaves(t *testing.T) {
	dir := t.TempDir()
	h := New(dir)

	for i := 0; i < 5; i++ {
		_, err := h.Save(&generation.Artifact{Data: []byte{byte('a' + i)}})
		require.NoError(t, err)
		assert.Equal(t, 0, h.Pending())
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "only the final artifact remains")
	assert.Equal(t, "ieee_paper.docx", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(dir, "ieee_paper.docx"))
	require.NoError(t, err)
	assert.Equal(t, "e", string(data), "latest save wins")
}

func TestSave_ReleasesTransientFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	h := New(dir)

	// a directory in the target's place makes the rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ieee_paper.docx"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ieee_paper.docx", "keep"), []byte("x"), 0o600))

	_, err := h.Save(&generation.Artifact{Data: []byte("doc")})

	require.Error(t, err)
	assert.Equal(t, 0, h.Pending())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "staged file was removed")
}

func TestSave_RejectsEmptyArtifact(t *testing.T) {
	h := New(t.TempDir())

	_, err := h.Save(&generation.Artifact{})
	assert.ErrorIs(t, err, apperrors.ErrDecode)

	_, err = h.Save(nil)
	assert.ErrorIs(t, err, apperrors.ErrDecode)
	assert.Equal(t, 0, h.Pending())
}

func TestSave_MissingDirectory(t *testing.T) {
	h := New(filepath.Join(t.TempDir(), "missing"))

	_, err := h.Save(&generation.Artifact{Data: []byte("doc")})

	require.Error(t, err)
	assert.Equal(t, 0, h.Pending())
}

func TestNew_DefaultsToWorkingDirectory(t *testing.T) {
	assert.Equal(t, "ieee_paper.docx", New("").Path())
}
