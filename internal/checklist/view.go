package checklist

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNotReady is returned when a view is used before Initialize.
var ErrNotReady = errors.New("checklist view not initialized")

// LoadSource tells where the initial rows came from.
type LoadSource string

const (
	SourceStored   LoadSource = "stored"
	SourceDefaults LoadSource = "defaults"
)

// LoadReport describes the outcome of Initialize.
type LoadReport struct {
	Source         LoadSource
	RowsStatus     DecodeStatus
	ProgressStatus DecodeStatus
	// Problems holds read and decode errors that were recovered from.
	Problems []error
}

// PersistError reports which of the two independent writes failed.
type PersistError struct {
	Rows     error
	Progress error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist checklist: %v", errors.Join(e.Unwrap()...))
}

// Unwrap returns the non-nil write errors.
func (e *PersistError) Unwrap() []error {
	var errs []error
	if e.Rows != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyRows, e.Rows))
	}
	if e.Progress != nil {
		errs = append(errs, fmt.Errorf("%s: %w", KeyProgress, e.Progress))
	}
	return errs
}

// ToggleResult describes a completed toggle. Err is a *PersistError when a
// write failed; the in-memory state was updated either way.
type ToggleResult struct {
	Index    int
	Selected bool
	Progress float64
	Err      error
}

// Persisted reports whether both keys were written.
func (r ToggleResult) Persisted() bool {
	return r.Err == nil
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithLogger sets the logger used for recovered errors.
func WithLogger(logger *log.Logger) ViewOption {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// View owns the checklist state and keeps it synchronized with a Store.
// It is not safe for concurrent use; all calls belong on the UI loop.
type View struct {
	store  Store
	logger *log.Logger
	state  State
	ready  bool
}

// NewView returns an uninitialized view backed by store.
func NewView(store Store, opts ...ViewOption) *View {
	v := &View{
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Ready reports whether Initialize has run.
func (v *View) Ready() bool {
	return v.ready
}

// State returns a copy of the current state.
func (v *View) State() State {
	return v.state.Clone()
}

// Initialize loads state from the store. Missing, empty or malformed rows
// fall back to DefaultRows with progress 0. Nothing is written back.
func (v *View) Initialize() LoadReport {
	report := LoadReport{}

	rawRows, found, err := v.store.Get(KeyRows)
	if err != nil {
		report.Problems = append(report.Problems, fmt.Errorf("read %s: %w", KeyRows, err))
		v.logger.Warn("reading stored rows failed", "err", err)
		found = false
	}
	rows, rowsStatus, err := DecodeRows(rawRows, found)
	report.RowsStatus = rowsStatus
	if err != nil {
		report.Problems = append(report.Problems, err)
		v.logger.Warn("stored rows are malformed, using defaults", "err", err)
	}

	rawProgress, found, err := v.store.Get(KeyProgress)
	if err != nil {
		report.Problems = append(report.Problems, fmt.Errorf("read %s: %w", KeyProgress, err))
		v.logger.Warn("reading stored progress failed", "err", err)
		found = false
	}
	progress, progressStatus, err := DecodeProgress(rawProgress, found)
	report.ProgressStatus = progressStatus
	if err != nil {
		report.Problems = append(report.Problems, err)
		v.logger.Warn("stored progress is malformed, using 0", "err", err)
	}

	if rowsStatus != DecodeValid || len(rows) == 0 {
		report.Source = SourceDefaults
		v.state = State{Rows: DefaultRows(), Progress: 0}
	} else {
		report.Source = SourceStored
		v.state = State{Rows: rows, Progress: progress}
		if !v.state.Consistent() {
			v.logger.Warn("stored progress does not match rows",
				"stored", progress, "computed", ComputeProgress(rows))
		}
	}
	v.ready = true

	v.logger.Debug("checklist initialized",
		"source", report.Source, "rows", len(v.state.Rows), "progress", v.state.Progress)
	return report
}

// Toggle flips the row at index, recomputes progress and writes both keys.
// An out-of-range index is rejected and leaves state and store untouched.
func (v *View) Toggle(index int) (ToggleResult, error) {
	if !v.ready {
		return ToggleResult{}, ErrNotReady
	}

	rows, err := ToggleRow(v.state.Rows, index)
	if err != nil {
		return ToggleResult{}, err
	}
	progress := ComputeProgress(rows)

	perr := &PersistError{}
	if encoded, err := EncodeRows(rows); err != nil {
		perr.Rows = err
	} else if err := v.store.Set(KeyRows, encoded); err != nil {
		perr.Rows = err
	}
	if err := v.store.Set(KeyProgress, EncodeProgress(progress)); err != nil {
		perr.Progress = err
	}

	v.state = State{Rows: rows, Progress: progress}

	result := ToggleResult{
		Index:    index,
		Selected: rows[index].Selected,
		Progress: progress,
	}
	if perr.Rows != nil || perr.Progress != nil {
		result.Err = perr
		v.logger.Error("saving checklist failed", "index", index, "err", perr)
	} else {
		v.logger.Debug("row toggled", "index", index, "selected", result.Selected, "progress", progress)
	}
	return result, nil
}
