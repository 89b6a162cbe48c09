package ledger

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/gdg-garage/iftar-registration/internal/models"
	"github.com/google/renameio/v2"
	"github.com/xuri/excelize/v2"
)

// writeFile atomically replaces a file. Tests swap it to simulate a failed
// write.
var writeFile = renameio.WriteFile

// FileStore keeps the ledger in a single xlsx workbook. Every mutation
// rewrites the whole file through a temp file that atomically replaces the
// previous one.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, readError(err)
}

func (s *FileStore) Load(ctx context.Context) ([]models.Registration, error) {
	exists, err := s.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []models.Registration{}, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, readError(err)
	}
	defer f.Close()

	regs, err := decodeWorkbook(f, false)
	if err != nil {
		return nil, readError(err)
	}
	return regs, nil
}

func (s *FileStore) Append(ctx context.Context, reg models.Registration) error {
	regs, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.write(append(regs, reg))
}

func (s *FileStore) DeleteLast(ctx context.Context) (models.Registration, error) {
	regs, err := s.Load(ctx)
	if err != nil {
		return models.Registration{}, err
	}
	if len(regs) == 0 {
		return models.Registration{}, ErrEmptyLedger
	}

	last := regs[len(regs)-1]
	if err := s.write(regs[:len(regs)-1]); err != nil {
		return models.Registration{}, err
	}
	return last, nil
}

func (s *FileStore) ClearAll(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return writeError(err)
	}
	return nil
}

// Export streams the backing file as stored. A ledger that was never
// written exports as a header-only workbook.
func (s *FileStore) Export(ctx context.Context, w io.Writer) error {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeWorkbook(w, nil); err != nil {
			return readError(err)
		}
		return nil
	}
	if err != nil {
		return readError(err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return readError(err)
	}
	return nil
}

func (s *FileStore) write(regs []models.Registration) error {
	f, err := encodeWorkbook(regs)
	if err != nil {
		return writeError(err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return writeError(err)
	}
	if err := writeFile(s.path, buf.Bytes(), 0o644); err != nil {
		return writeError(err)
	}
	return nil
}
