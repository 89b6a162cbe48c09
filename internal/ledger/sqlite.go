package ledger

import (
	"context"
	"errors"
	"io"

	"github.com/gdg-garage/iftar-registration/internal/models"
	"gorm.io/gorm"
)

// DBStore keeps the ledger in the ledger_entries table of a SQLite
// database. Exists reports whether any row is stored.
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.LedgerEntry{}).Count(&count).Error; err != nil {
		return false, readError(err)
	}
	return count > 0, nil
}

func (s *DBStore) Load(ctx context.Context) ([]models.Registration, error) {
	var entries []models.LedgerEntry
	if err := s.db.WithContext(ctx).Order("id asc").Find(&entries).Error; err != nil {
		return nil, readError(err)
	}

	regs := make([]models.Registration, len(entries))
	for i, e := range entries {
		regs[i] = e.Registration
	}
	return regs, nil
}

func (s *DBStore) Append(ctx context.Context, reg models.Registration) error {
	entry := models.LedgerEntry{Registration: reg}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return writeError(err)
	}
	return nil
}

func (s *DBStore) DeleteLast(ctx context.Context) (models.Registration, error) {
	var entry models.LedgerEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Last(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyLedger
			}
			return readError(err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return writeError(err)
		}
		return nil
	})
	if err != nil {
		return models.Registration{}, err
	}
	return entry.Registration, nil
}

func (s *DBStore) ClearAll(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.LedgerEntry{}).Error; err != nil {
		return writeError(err)
	}
	return nil
}

func (s *DBStore) Export(ctx context.Context, w io.Writer) error {
	regs, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := writeWorkbook(w, regs); err != nil {
		return readError(err)
	}
	return nil
}
