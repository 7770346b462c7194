package records

// Hits holds the matches of one query, one named sequence per collection.
type Hits struct {
	Schedules  []Schedule     `json:"schedules"`
	Facilities []Facility     `json:"facilities"`
	Dining     []DiningOption `json:"dining"`
	Library    []LibraryItem  `json:"library"`
	Admin      []AdminOffice  `json:"admin"`
}

// List is a collection's hits viewed through the Record interface.
type List struct {
	Collection Collection
	Records    []Record
}

// NewHits returns Hits with every sequence allocated, so it encodes as [] rather than null.
func NewHits() Hits {
	return Hits{
		Schedules:  []Schedule{},
		Facilities: []Facility{},
		Dining:     []DiningOption{},
		Library:    []LibraryItem{},
		Admin:      []AdminOffice{},
	}
}

// Normalize replaces nil sequences with empty ones.
func (h Hits) Normalize() Hits {
	if h.Schedules == nil {
		h.Schedules = []Schedule{}
	}
	if h.Facilities == nil {
		h.Facilities = []Facility{}
	}
	if h.Dining == nil {
		h.Dining = []DiningOption{}
	}
	if h.Library == nil {
		h.Library = []LibraryItem{}
	}
	if h.Admin == nil {
		h.Admin = []AdminOffice{}
	}
	return h
}

// Lists returns the hits of every collection in Collections order.
func (h Hits) Lists() []List {
	return []List{
		{Collection: Schedules, Records: toRecords(h.Schedules)},
		{Collection: Facilities, Records: toRecords(h.Facilities)},
		{Collection: Dining, Records: toRecords(h.Dining)},
		{Collection: Library, Records: toRecords(h.Library)},
		{Collection: Admin, Records: toRecords(h.Admin)},
	}
}

func (h Hits) Total() int {
	return len(h.Schedules) + len(h.Facilities) + len(h.Dining) + len(h.Library) + len(h.Admin)
}

func (h Hits) Empty() bool {
	return h.Total() == 0
}

func toRecords[T Record](items []T) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}
