package models

import "time"

// Teacher is the roster entry used to resolve display names.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	NIP       *string   `db:"nip" json:"nip,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TeacherDirectory indexes teachers by id for name lookups during resolution.
type TeacherDirectory map[string]Teacher

// NewTeacherDirectory builds a directory from a roster listing.
func NewTeacherDirectory(teachers []Teacher) TeacherDirectory {
	dir := make(TeacherDirectory, len(teachers))
	for _, t := range teachers {
		dir[t.ID] = t
	}
	return dir
}

// Name returns the display name for a teacher id, nil when unknown or empty.
func (d TeacherDirectory) Name(id string) *string {
	if id == "" {
		return nil
	}
	if t, ok := d[id]; ok {
		name := t.Name
		return &name
	}
	return nil
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	TotalCount  int `json:"total"`
	LastPage    int `json:"last_page"`
}
