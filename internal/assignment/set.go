package assignment

import (
	"github.com/geocasagroup/portal/internal"
)

// Set is the full pending Assignment Set built during a registration
// workflow: three parallel collections, one per category. It is transient
// and never retained in the session store.
type Set struct {
	Departments *Collection
	Divisions   *Collection
	Offices     *Collection
}

func NewSet() *Set {
	return &Set{
		Departments: NewCollection(KindDepartment),
		Divisions:   NewCollection(KindDivision),
		Offices:     NewCollection(KindOffice),
	}
}

// ValidateForSubmit enforces the minimum-selection rule: at least one
// division or office. Department assignments alone are not enough.
func (s *Set) ValidateForSubmit() error {
	if s.Divisions.Len() == 0 && s.Offices.Len() == 0 {
		return internal.ErrNoDivisionOrOffice
	}
	return nil
}
