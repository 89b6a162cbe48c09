// Package registration turns form submissions into ledger rows.
package registration

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdg-garage/iftar-registration/internal/models"
)

// maxTextLen is the longest text a workbook cell holds.
const maxTextLen = 32767

// Form is one submission of the registration form.
type Form struct {
	Name           string
	StudentID      string
	Department     models.Department
	Level          models.Level
	PrimaryMeal    models.Meal
	CompanionCount int
	CompanionMeals []models.Meal
}

// ValidationError rejects a submission because of a single field.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NextTicketNumber derives the next ticket from the highest issued one, not
// from the row count, so removed rows never lead to a duplicate. An empty
// ledger starts again at 1.
func NextTicketNumber(ledger []models.Registration) int {
	highest := 0
	for _, r := range ledger {
		if r.TicketNumber > highest {
			highest = r.TicketNumber
		}
	}
	return highest + 1
}

// Build validates the form and assembles the registration it describes.
func Build(form Form, ticket int, now time.Time) (models.Registration, error) {
	if err := validate(form); err != nil {
		return models.Registration{}, err
	}

	meals := make(models.MealList, 0, 1+len(form.CompanionMeals))
	meals = append(meals, form.PrimaryMeal)
	meals = append(meals, form.CompanionMeals...)

	people := 1 + form.CompanionCount

	return models.Registration{
		TicketNumber:   ticket,
		Name:           strings.TrimSpace(form.Name),
		StudentID:      strings.TrimSpace(form.StudentID),
		Department:     form.Department,
		Level:          form.Level,
		PrimaryMeal:    form.PrimaryMeal,
		MealSummary:    meals,
		CompanionCount: form.CompanionCount,
		TotalPeople:    people,
		TotalPrice:     people * models.TicketPrice,
		CreatedAt:      now,
	}, nil
}

func validate(form Form) error {
	if strings.TrimSpace(form.Name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty", Value: form.Name}
	}
	if strings.TrimSpace(form.StudentID) == "" {
		return &ValidationError{Field: "student_id", Message: "must not be empty", Value: form.StudentID}
	}
	if err := validateText("name", form.Name); err != nil {
		return err
	}
	if err := validateText("student_id", form.StudentID); err != nil {
		return err
	}
	if !form.Department.Valid() {
		return &ValidationError{Field: "department", Message: "unknown department", Value: form.Department}
	}
	if !form.Level.Valid() {
		return &ValidationError{Field: "level", Message: "must be between 1 and 4", Value: form.Level}
	}
	if !form.PrimaryMeal.Valid() {
		return &ValidationError{Field: "primary_meal", Message: "unknown meal", Value: form.PrimaryMeal}
	}
	if form.CompanionCount < 0 {
		return &ValidationError{Field: "companion_count", Message: "must not be negative", Value: form.CompanionCount}
	}
	if len(form.CompanionMeals) != form.CompanionCount {
		return &ValidationError{
			Field:   "companion_meals",
			Message: fmt.Sprintf("expected %d meals, got %d", form.CompanionCount, len(form.CompanionMeals)),
			Value:   form.CompanionMeals,
		}
	}
	for i, m := range form.CompanionMeals {
		if !m.Valid() {
			return &ValidationError{Field: fmt.Sprintf("companion_meals[%d]", i), Message: "unknown meal", Value: m}
		}
	}
	return nil
}

// validateText rejects values the workbook cannot store unchanged.
func validateText(field, value string) error {
	if n := utf8.RuneCountInString(value); n > maxTextLen {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters, got %d", maxTextLen, n)}
	}
	if !utf8.ValidString(value) {
		return &ValidationError{Field: field, Message: "must be valid UTF-8", Value: value}
	}
	for _, r := range value {
		if unicode.IsControl(r) && r != '\t' && r != '\n' {
			return &ValidationError{Field: field, Message: fmt.Sprintf("must not contain control character %U", r), Value: value}
		}
	}
	return nil
}
