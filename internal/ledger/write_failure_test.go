package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdg-garage/iftar-registration/internal/models"
	"github.com/google/renameio/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errDiskFull = errors.New("disk full")

// failFileWrites makes every workbook replacement fail until the test ends.
func failFileWrites(t *testing.T) {
	t.Helper()
	orig := writeFile
	writeFile = func(string, []byte, os.FileMode, ...renameio.Option) error {
		return errDiskFull
	}
	t.Cleanup(func() { writeFile = orig })
}

func TestFileStore_FailedWriteKeepsPreviousFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "iftar_data.xlsx"))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleRegistration(1, models.DepartmentAI)))
	require.NoError(t, store.Append(ctx, sampleRegistration(2, models.DepartmentCyber)))

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	failFileWrites(t)

	err = store.Append(ctx, sampleRegistration(3, models.DepartmentMedia))
	require.ErrorIs(t, err, ErrStorageWrite)
	assert.ErrorIs(t, err, errDiskFull)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "append failure must leave the file untouched")

	_, err = store.DeleteLast(ctx)
	require.ErrorIs(t, err, ErrStorageWrite)

	after, err = os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "delete failure must leave the file untouched")

	regs, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, 2, regs[1].TicketNumber)
}

func TestFileStore_FailedFirstWriteCreatesNothing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "iftar_data.xlsx"))
	ctx := context.Background()

	failFileWrites(t)

	err := store.Append(ctx, sampleRegistration(1, models.DepartmentAI))
	require.ErrorIs(t, err, ErrStorageWrite)

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDBStore_FailedWriteKeepsPreviousRows(t *testing.T) {
	db := openTestDB(t)
	store := NewDBStore(db)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, sampleRegistration(1, models.DepartmentAI)))
	require.NoError(t, store.Append(ctx, sampleRegistration(2, models.DepartmentCyber)))

	before, err := store.Load(ctx)
	require.NoError(t, err)

	fail := func(tx *gorm.DB) { tx.AddError(errDiskFull) }
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_create", fail))
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_delete", fail))

	err = store.Append(ctx, sampleRegistration(3, models.DepartmentMedia))
	require.ErrorIs(t, err, ErrStorageWrite)

	_, err = store.DeleteLast(ctx)
	require.ErrorIs(t, err, ErrStorageWrite)

	after, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	for i := range before {
		requireSameRegistration(t, before[i], after[i])
	}
}

func TestDBStore_ClosedDatabase(t *testing.T) {
	db := openTestDB(t)
	store := NewDBStore(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = store.Append(context.Background(), sampleRegistration(1, models.DepartmentAI))
	require.ErrorIs(t, err, ErrStorageWrite)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, ErrStorageRead)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errDiskFull
}

func TestStore_ExportToFailingWriter(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			err := store.Export(ctx, failingWriter{})
			require.ErrorIs(t, err, ErrStorageRead, "empty ledger")
			assert.ErrorIs(t, err, errDiskFull)

			require.NoError(t, store.Append(ctx, sampleRegistration(1, models.DepartmentAI)))

			err = store.Export(ctx, failingWriter{})
			require.ErrorIs(t, err, ErrStorageRead, "populated ledger")
			assert.ErrorIs(t, err, errDiskFull)
		})
	}
}
