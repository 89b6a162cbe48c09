// Package report derives read-only statistics from the registration ledger.
package report

import (
	"sort"

	"github.com/gdg-garage/iftar-registration/internal/models"
)

type Metrics struct {
	Count          int `json:"count" doc:"Number of registrations"`
	TotalRevenue   int `json:"total_revenue" doc:"Sum of all registration prices"`
	TotalAttendees int `json:"total_attendees" doc:"Registrants plus companions"`
}

type Bucket struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Distribution is a grouped count or sum, in display order.
type Distribution []Bucket

func (d Distribution) Map() map[string]int {
	m := make(map[string]int, len(d))
	for _, b := range d {
		m[b.Label] = b.Value
	}
	return m
}

type Report struct {
	Metrics                Metrics      `json:"metrics"`
	MealDistribution       Distribution `json:"meal_distribution"`
	DepartmentDistribution Distribution `json:"department_distribution"`
	RevenueByDepartment    Distribution `json:"revenue_by_department"`
}

func Build(ledger []models.Registration) Report {
	return Report{
		Metrics:                SummaryMetrics(ledger),
		MealDistribution:       MealDistribution(ledger),
		DepartmentDistribution: DepartmentDistribution(ledger),
		RevenueByDepartment:    RevenueByDepartment(ledger),
	}
}

func SummaryMetrics(ledger []models.Registration) Metrics {
	m := Metrics{Count: len(ledger)}
	for _, r := range ledger {
		m.TotalRevenue += r.TotalPrice
		m.TotalAttendees += r.TotalPeople
	}
	return m
}

// MealDistribution counts every meal served, companions included, most
// frequent first. Ties keep the order in which the meals first appear.
func MealDistribution(ledger []models.Registration) Distribution {
	var c counter
	for _, r := range ledger {
		for _, m := range r.MealSummary {
			c.add(string(m), 1)
		}
	}
	return c.byFrequency()
}

// DepartmentDistribution counts registrations, not people, per department.
// Departments nobody registered from are absent.
func DepartmentDistribution(ledger []models.Registration) Distribution {
	var c counter
	for _, r := range ledger {
		c.add(string(r.Department), 1)
	}
	return c.byFrequency()
}

// RevenueByDepartment sums registration prices per department, ordered by
// department name.
func RevenueByDepartment(ledger []models.Registration) Distribution {
	var c counter
	for _, r := range ledger {
		c.add(string(r.Department), r.TotalPrice)
	}
	return c.byLabel()
}

// counter accumulates values per label and remembers first-seen order.
type counter struct {
	buckets Distribution
	index   map[string]int
}

func (c *counter) add(label string, value int) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	i, ok := c.index[label]
	if !ok {
		i = len(c.buckets)
		c.index[label] = i
		c.buckets = append(c.buckets, Bucket{Label: label})
	}
	c.buckets[i].Value += value
}

func (c *counter) byFrequency() Distribution {
	d := c.result()
	sort.SliceStable(d, func(i, j int) bool { return d[i].Value > d[j].Value })
	return d
}

func (c *counter) byLabel() Distribution {
	d := c.result()
	sort.SliceStable(d, func(i, j int) bool { return d[i].Label < d[j].Label })
	return d
}

func (c *counter) result() Distribution {
	if c.buckets == nil {
		return Distribution{}
	}
	return c.buckets
}
