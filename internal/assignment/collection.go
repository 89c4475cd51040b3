package assignment

// Kind names an assignment category. The three categories share one
// Collection implementation instead of three copies of the same
// add/remove/set-primary bookkeeping.
type Kind string

const (
	KindDepartment Kind = "department"
	KindDivision   Kind = "division"
	KindOffice     Kind = "office"
)

// Entry is one pending grant. DivisionID is only populated for office
// entries, carrying the owning division.
type Entry struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	IsPrimary  bool    `json:"is_primary"`
	DivisionID *string `json:"division_id,omitempty"`
}

// Collection accumulates entries for one category while a registration form
// is being filled in.
//
// Invariants:
//   - at most one entry is primary
//   - the first entry added to an empty collection becomes primary
//   - removing the primary does NOT promote another entry; the user must
//     re-select explicitly
type Collection struct {
	kind    Kind
	entries []Entry
}

func NewCollection(kind Kind) *Collection {
	return &Collection{kind: kind}
}

func (c *Collection) Kind() Kind {
	return c.kind
}

// Add appends an entry, auto-marking it primary when the collection was
// empty. Adding an id that is already present is a no-op; the return value
// reports whether anything changed.
func (c *Collection) Add(id, name string) bool {
	return c.add(id, name, nil)
}

// AddWithDivision is Add for office entries, carrying the owning division id.
func (c *Collection) AddWithDivision(id, name string, divisionID *string) bool {
	return c.add(id, name, divisionID)
}

func (c *Collection) add(id, name string, divisionID *string) bool {
	for _, e := range c.entries {
		if e.ID == id {
			return false
		}
	}
	c.entries = append(c.entries, Entry{
		ID:         id,
		Name:       name,
		IsPrimary:  len(c.entries) == 0,
		DivisionID: divisionID,
	})
	return true
}

// Remove deletes the matching entry. Other entries' primary flags are left
// alone even when the primary itself is removed.
func (c *Collection) Remove(id string) bool {
	for i, e := range c.entries {
		if e.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// SetPrimary marks id primary and clears the flag on every other entry.
// No-op when id is not present.
func (c *Collection) SetPrimary(id string) bool {
	found := false
	for i := range c.entries {
		if c.entries[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range c.entries {
		c.entries[i].IsPrimary = c.entries[i].ID == id
	}
	return true
}

func (c *Collection) Len() int {
	return len(c.entries)
}

// Entries returns a copy so callers cannot bypass the invariants.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Primary returns the primary entry if one exists.
func (c *Collection) Primary() (Entry, bool) {
	for _, e := range c.entries {
		if e.IsPrimary {
			return e, true
		}
	}
	return Entry{}, false
}
