package database

import (
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/campus-agent/internal/records"
)

// table describes one collection: its columns (id excluded), the fields a
// substring pattern is matched against, and how rows map to the record type.
type table[T records.Record] struct {
	name       string
	columns    []string
	searchable []string
	scan       func(scanner) (T, error)
	values     func(T) []any
}

var tableNames = []string{
	string(records.Schedules),
	string(records.Facilities),
	string(records.Dining),
	string(records.Library),
	string(records.Admin),
}

var scheduleTable = table[records.Schedule]{
	name:       string(records.Schedules),
	columns:    []string{"title", "location", "start_time", "end_time", "details"},
	searchable: []string{"title", "details", "location"},
	scan: func(row scanner) (records.Schedule, error) {
		var s records.Schedule
		err := row.Scan(&s.ID, &s.Title, &s.Location, &s.StartTime, &s.EndTime, &s.Details)
		return s, err
	},
	values: func(s records.Schedule) []any {
		return []any{s.Title, s.Location, s.StartTime.UTC(), s.EndTime.UTC(), s.Details}
	},
}

var facilityTable = table[records.Facility]{
	name:       string(records.Facilities),
	columns:    []string{"name", "category", "location", "hours", "details"},
	searchable: []string{"name", "category", "location", "details"},
	scan: func(row scanner) (records.Facility, error) {
		var f records.Facility
		err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Location, &f.Hours, &f.Details)
		return f, err
	},
	values: func(f records.Facility) []any {
		return []any{f.Name, f.Category, f.Location, f.Hours, f.Details}
	},
}

var diningTable = table[records.DiningOption]{
	name:       string(records.Dining),
	columns:    []string{"name", "cuisine", "hours", "location", "details"},
	searchable: []string{"name", "cuisine", "location", "details"},
	scan: func(row scanner) (records.DiningOption, error) {
		var d records.DiningOption
		err := row.Scan(&d.ID, &d.Name, &d.Cuisine, &d.Hours, &d.Location, &d.Details)
		return d, err
	},
	values: func(d records.DiningOption) []any {
		return []any{d.Name, d.Cuisine, d.Hours, d.Location, d.Details}
	},
}

var libraryTable = table[records.LibraryItem]{
	name:       string(records.Library),
	columns:    []string{"title", "author", "call_number", "status"},
	searchable: []string{"title", "author", "call_number"},
	scan: func(row scanner) (records.LibraryItem, error) {
		var l records.LibraryItem
		var status string
		err := row.Scan(&l.ID, &l.Title, &l.Author, &l.CallNumber, &status)
		l.Status = records.LibraryStatus(status)
		return l, err
	},
	values: func(l records.LibraryItem) []any {
		return []any{l.Title, l.Author, l.CallNumber, string(l.Status)}
	},
}

var adminTable = table[records.AdminOffice]{
	name:       string(records.Admin),
	columns:    []string{"office", "contact", "hours", "details"},
	searchable: []string{"office", "details"},
	scan: func(row scanner) (records.AdminOffice, error) {
		var a records.AdminOffice
		err := row.Scan(&a.ID, &a.Office, &a.Contact, &a.Hours, &a.Details)
		return a, err
	},
	values: func(a records.AdminOffice) []any {
		return []any{a.Office, a.Contact, a.Hours, a.Details}
	},
}

// selectQuery builds the lookup for pattern. An empty pattern selects every row.
// LIKE metacharacters in pattern are not escaped, and no backend has an escape character.
func (t table[T]) selectQuery(d dialect, pattern string) (string, []any) {
	var qb strings.Builder
	qb.WriteString("SELECT id, ")
	qb.WriteString(strings.Join(t.columns, ", "))
	qb.WriteString(" FROM ")
	qb.WriteString(t.name)

	var args []any
	if pattern != "" {
		like := "%" + strings.ToLower(pattern) + "%"
		conditions := make([]string, len(t.searchable))
		for i, field := range t.searchable {
			conditions[i] = fmt.Sprintf("%s(COALESCE(%s, '')) LIKE %s%s", d.lower, field, d.placeholder(i+1), d.likeEscape)
			args = append(args, like)
		}
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(conditions, " OR "))
	}

	qb.WriteString(" ORDER BY id ASC")
	return qb.String(), args
}

func (t table[T]) insertQuery(d dialect) string {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = d.placeholder(i + 1)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}
