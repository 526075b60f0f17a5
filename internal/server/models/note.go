package models

import "time"

// Note is a text note owned by exactly one user. Owner holds the owner's
// UserName and never changes after creation.
type Note struct {
	ID        int64
	Owner     string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy so callers cannot alias a stored note's tags.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append(make([]string, 0, len(n.Tags)), n.Tags...)
	return &c
}
