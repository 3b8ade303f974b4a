package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"telegraphdl/pkg/errors"
)

// Manager writes downloaded images into one output directory
type Manager struct {
	outputDir string
	fileMode  os.FileMode
}

// NewManager creates a storage manager for an existing directory. The
// directory is not created: a missing output path is a caller error.
func NewManager(outputDir string, fileMode os.FileMode) (*Manager, error) {
	info, err := os.Stat(outputDir)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeFilesystem, "open_output", outputDir, err)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrorTypeFilesystem, "open_output", outputDir,
			fmt.Errorf("not a directory"))
	}
	if fileMode == 0 {
		fileMode = 0644
	}

	return &Manager{
		outputDir: outputDir,
		fileMode:  fileMode,
	}, nil
}

// Path returns the destination path for a sanitized filename. The output
// directory is used as given, so "out/" yields "out//name".
func (m *Manager) Path(name string) string {
	return m.outputDir + string(filepath.Separator) + name
}

// Exists reports whether anything is already present at the destination.
// Content and completeness are not checked.
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.Path(name))
	return err == nil
}

// Save writes r to the destination for name through a temporary file and
// rename, returning the number of bytes written.
func (m *Manager) Save(r io.Reader, name string) (int64, error) {
	filename := m.Path(name)
	tempFile := filename + "." + uuid.NewString() + ".tmp"

	out, err := os.OpenFile(tempFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, m.fileMode)
	if err != nil {
		return 0, errors.New(errors.ErrorTypeFilesystem, "write", filename, err)
	}

	written, err := io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return 0, errors.New(errors.ErrorTypeFilesystem, "write", filename, err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return 0, errors.New(errors.ErrorTypeFilesystem, "write", filename, closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return 0, errors.New(errors.ErrorTypeFilesystem, "write", filename, err)
	}

	return written, nil
}
