package records

import (
	"strings"
	"time"
)

type Collection string

const (
	Schedules  Collection = "schedules"
	Facilities Collection = "facilities"
	Dining     Collection = "dining"
	Library    Collection = "library"
	Admin      Collection = "admin"
)

// Collections lists every collection in summary order.
var Collections = []Collection{Schedules, Facilities, Dining, Library, Admin}

// Record is implemented by every row type.
type Record interface {
	RecordID() int64
}

type Schedule struct {
	ID        int64     `json:"id" yaml:"-"`
	Title     string    `json:"title" yaml:"title"`
	Location  string    `json:"location" yaml:"location"`
	StartTime time.Time `json:"start_time" yaml:"start_time"`
	EndTime   time.Time `json:"end_time" yaml:"end_time"`
	Details   string    `json:"details" yaml:"details"`
}

type Facility struct {
	ID       int64  `json:"id" yaml:"-"`
	Name     string `json:"name" yaml:"name" description:"Facility name (required)"`
	Category string `json:"category" yaml:"category"`
	Location string `json:"location" yaml:"location"`
	Hours    string `json:"hours" yaml:"hours"`
	Details  string `json:"details" yaml:"details"`
}

type DiningOption struct {
	ID       int64  `json:"id" yaml:"-"`
	Name     string `json:"name" yaml:"name"`
	Cuisine  string `json:"cuisine" yaml:"cuisine"`
	Hours    string `json:"hours" yaml:"hours"`
	Location string `json:"location" yaml:"location"`
	Details  string `json:"details" yaml:"details"`
}

type LibraryStatus string

const (
	StatusAvailable  LibraryStatus = "available"
	StatusCheckedOut LibraryStatus = "checked-out"
)

// ParseLibraryStatus normalizes spelling variants of the known statuses.
// Blank means available, matching the column default. Other text is kept as is.
func ParseLibraryStatus(s string) LibraryStatus {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch strings.NewReplacer("_", "-", " ", "-").Replace(normalized) {
	case "", string(StatusAvailable):
		return StatusAvailable
	case string(StatusCheckedOut), "checkedout":
		return StatusCheckedOut
	default:
		return LibraryStatus(strings.TrimSpace(s))
	}
}

type LibraryItem struct {
	ID         int64         `json:"id" yaml:"-"`
	Title      string        `json:"title" yaml:"title"`
	Author     string        `json:"author" yaml:"author"`
	CallNumber string        `json:"call_number" yaml:"call_number"`
	Status     LibraryStatus `json:"status" yaml:"status"`
}

type AdminOffice struct {
	ID      int64  `json:"id" yaml:"-"`
	Office  string `json:"office" yaml:"office"`
	Contact string `json:"contact" yaml:"contact"`
	Hours   string `json:"hours" yaml:"hours"`
	Details string `json:"details" yaml:"details"`
}

func (s Schedule) RecordID() int64     { return s.ID }
func (f Facility) RecordID() int64     { return f.ID }
func (d DiningOption) RecordID() int64 { return d.ID }
func (l LibraryItem) RecordID() int64  { return l.ID }
func (a AdminOffice) RecordID() int64  { return a.ID }
