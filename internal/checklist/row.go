package checklist

import (
	"encoding/json"
)

// Row is a single checklist entry. Only Selected changes after creation.
type Row struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Selected    bool   `json:"selected"`
}

// NewRow returns an unselected row.
func NewRow(category, description, date string) Row {
	return Row{
		Category:    category,
		Description: description,
		Date:        date,
	}
}

// DefaultRows returns the rows a fresh checklist starts with.
func DefaultRows() []Row {
	return []Row{
		NewRow("Math", "Homework 3", "2020-09-10"),
		NewRow("Reading", "To Kill a Mocking Bird", "2020-05-21"),
	}
}

// UnmarshalJSON accepts the legacy "type" key as an alias for "category".
func (r *Row) UnmarshalJSON(data []byte) error {
	var aux struct {
		Category    *string `json:"category"`
		Type        *string `json:"type"`
		Description string  `json:"description"`
		Date        string  `json:"date"`
		Selected    bool    `json:"selected"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*r = Row{
		Description: aux.Description,
		Date:        aux.Date,
		Selected:    aux.Selected,
	}
	switch {
	case aux.Category != nil:
		r.Category = *aux.Category
	case aux.Type != nil:
		r.Category = *aux.Type
	}
	return nil
}

// State is the full checklist state: rows in display order plus the cached
// progress percentage.
type State struct {
	Rows     []Row
	Progress float64
}

// Clone returns a copy of the state that shares no row storage.
func (s State) Clone() State {
	rows := make([]Row, len(s.Rows))
	copy(rows, s.Rows)
	return State{Rows: rows, Progress: s.Progress}
}

// Consistent reports whether the cached progress matches the rows.
func (s State) Consistent() bool {
	return s.Progress == ComputeProgress(s.Rows)
}
