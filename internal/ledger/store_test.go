package ledger

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdg-garage/iftar-registration/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newFileStore(t *testing.T) Store {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "iftar_data.xlsx"))
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.LedgerEntry{}))
	return db
}

func newDBStore(t *testing.T) Store {
	t.Helper()
	return NewDBStore(openTestDB(t))
}

var backends = map[string]func(t *testing.T) Store{
	"xlsx":   newFileStore,
	"sqlite": newDBStore,
}

func sampleRegistration(ticket int, dept models.Department, meals ...models.Meal) models.Registration {
	if len(meals) == 0 {
		meals = []models.Meal{models.MealMeat}
	}
	people := len(meals)
	return models.Registration{
		TicketNumber:   ticket,
		Name:           "Student " + string(rune('A'+ticket)),
		StudentID:      "2024" + string(rune('0'+ticket%10)),
		Department:     dept,
		Level:          models.Level(ticket%4 + 1),
		PrimaryMeal:    meals[0],
		MealSummary:    models.MealList(meals),
		CompanionCount: people - 1,
		TotalPeople:    people,
		TotalPrice:     people * models.TicketPrice,
		CreatedAt:      time.Date(2025, 3, 10, 18, 30, ticket, 123000, time.UTC),
	}
}

func requireSameRegistration(t *testing.T, want, got models.Registration) {
	t.Helper()
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "created_at: want %v, got %v", want.CreatedAt, got.CreatedAt)
	want.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
	require.Equal(t, want, got)
}

func TestStore_LoadMissing(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			regs, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, regs)

			exists, err := store.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}

func TestStore_AppendThenLoad(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			first := sampleRegistration(1, models.DepartmentAI, models.MealMeat, models.MealChicken)
			second := sampleRegistration(2, models.DepartmentDataScience, models.MealSyamii)

			require.NoError(t, store.Append(ctx, first))
			before, err := store.Load(ctx)
			require.NoError(t, err)

			require.NoError(t, store.Append(ctx, second))
			after, err := store.Load(ctx)
			require.NoError(t, err)

			require.Len(t, after, len(before)+1)
			requireSameRegistration(t, first, after[0])
			requireSameRegistration(t, second, after[len(after)-1])

			exists, err := store.Exists(ctx)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestStore_DeleteLast(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			require.NoError(t, store.Append(ctx, sampleRegistration(1, models.DepartmentAI)))
			require.NoError(t, store.Append(ctx, sampleRegistration(2, models.DepartmentCyber)))

			removed, err := store.DeleteLast(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, removed.TicketNumber)

			regs, err := store.Load(ctx)
			require.NoError(t, err)
			require.Len(t, regs, 1)
			assert.Equal(t, 1, regs[0].TicketNumber)
		})
	}
}

func TestStore_DeleteLastEmpty(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			_, err := store.DeleteLast(ctx)
			require.ErrorIs(t, err, ErrEmptyLedger)

			exists, err := store.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists, "delete on empty ledger must not create storage")
		})
	}
}

func TestStore_ClearAll(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			// Clearing an absent ledger is a no-op.
			require.NoError(t, store.ClearAll(ctx))

			require.NoError(t, store.Append(ctx, sampleRegistration(1, models.DepartmentMedia)))
			require.NoError(t, store.ClearAll(ctx))

			exists, err := store.Exists(ctx)
			require.NoError(t, err)
			assert.False(t, exists)

			regs, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, regs)
		})
	}
}

func TestStore_ExportLoadsBack(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			want := []models.Registration{
				sampleRegistration(1, models.DepartmentHealthcare, models.MealChicken, models.MealChicken, models.MealMeat),
				sampleRegistration(2, models.DepartmentAI),
			}
			for _, r := range want {
				require.NoError(t, store.Append(ctx, r))
			}

			var buf bytes.Buffer
			require.NoError(t, store.Export(ctx, &buf))

			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer f.Close()

			got, err := decodeWorkbook(f, false)
			require.NoError(t, err)
			require.Len(t, got, len(want))
			for i := range want {
				requireSameRegistration(t, want[i], got[i])
			}
		})
	}
}

func TestStore_TextRoundTrip(t *testing.T) {
	for name, newStore := range backends {
		t.Run(name, func(t *testing.T) {
			store := newStore(t)
			ctx := context.Background()

			reg := sampleRegistration(1, models.DepartmentAI)
			reg.Name = "Mona\tEl-Sayed\nسارة " + strings.Repeat("x", 32000)
			reg.StudentID = "2024\t001"
			require.NoError(t, store.Append(ctx, reg))

			regs, err := store.Load(ctx)
			require.NoError(t, err)
			require.Len(t, regs, 1)
			requireSameRegistration(t, reg, regs[0])
		})
	}
}

func TestFileStore_ExportMissingIsHeaderOnly(t *testing.T) {
	store := newFileStore(t)

	var buf bytes.Buffer
	require.NoError(t, store.Export(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestFileStore_WritesExpectedColumns(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "ledger.xlsx"))
	reg := sampleRegistration(7, models.DepartmentDataScience, models.MealMeat, models.MealChicken, models.MealSyamii)
	require.NoError(t, store.Append(context.Background(), reg))

	f, err := excelize.OpenFile(store.Path())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Meat, Chicken, Syamii", rows[1][6])
	assert.Equal(t, "Data Science", rows[1][3])
	assert.Equal(t, "750", rows[1][9])
}
