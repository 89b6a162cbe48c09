package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// TicketPrice is the price of one seat, charged for the registrant and for
// every companion alike.
const TicketPrice = 250

type Department string

const (
	DepartmentDataScience Department = "Data Science"
	DepartmentAI          Department = "AI"
	DepartmentCyber       Department = "Cyber"
	DepartmentHealthcare  Department = "Healthcare"
	DepartmentMedia       Department = "Media"
)

var Departments = []Department{
	DepartmentDataScience,
	DepartmentAI,
	DepartmentCyber,
	DepartmentHealthcare,
	DepartmentMedia,
}

func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

type Meal string

const (
	MealMeat    Meal = "Meat"
	MealChicken Meal = "Chicken"
	MealSyamii  Meal = "Syamii"
)

var Meals = []Meal{MealMeat, MealChicken, MealSyamii}

func (m Meal) Valid() bool {
	for _, known := range Meals {
		if m == known {
			return true
		}
	}
	return false
}

type Level int

func (l Level) Valid() bool {
	return l >= 1 && l <= 4
}

// MealList is stored as a single ", " joined string, the format of the
// "Meals Details" column.
type MealList []Meal

func (l MealList) String() string {
	parts := make([]string, len(l))
	for i, m := range l {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// ParseMealList splits a "Meals Details" value. Blank input yields an
// empty list.
func ParseMealList(s string) MealList {
	if strings.TrimSpace(s) == "" {
		return MealList{}
	}
	parts := strings.Split(s, ",")
	list := make(MealList, 0, len(parts))
	for _, p := range parts {
		list = append(list, Meal(strings.TrimSpace(p)))
	}
	return list
}

func (l MealList) Value() (driver.Value, error) {
	return l.String(), nil
}

func (l *MealList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = MealList{}
	case string:
		*l = ParseMealList(v)
	case []byte:
		*l = ParseMealList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into MealList", src)
	}
	return nil
}

func (MealList) GormDataType() string {
	return "text"
}

type Registration struct {
	TicketNumber   int        `json:"ticket_number" gorm:"uniqueIndex"`
	Name           string     `json:"name"`
	StudentID      string     `json:"student_id"`
	Department     Department `json:"department"`
	Level          Level      `json:"level"`
	PrimaryMeal    Meal       `json:"primary_meal"`
	MealSummary    MealList   `json:"meal_summary"`
	CompanionCount int        `json:"companion_count"`
	TotalPeople    int        `json:"total_people"`
	TotalPrice     int        `json:"total_price"`
	CreatedAt      time.Time  `json:"created_at"`
}
