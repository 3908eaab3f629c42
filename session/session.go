// Package session tracks a single filter editing session, from the first draft to the
// committed query clause.
package session

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/theplant/datefilter"
	"github.com/theplant/datefilter/mbql"
)

type State string

const (
	StateUnset     State = "unset"
	StateEditing   State = "editing"
	StateValid     State = "valid"
	StateInvalid   State = "invalid"
	StateCommitted State = "committed"
)

var ErrNoDraft = errors.New("no filter is being edited")

// Editor holds the draft filter of one editing session. It is not safe for concurrent use.
type Editor struct {
	id         uuid.UUID
	column     string
	state      State
	draft      datefilter.Relative
	clause     *mbql.Clause
	log        zerolog.Logger
	metrics    *Metrics
	clauseOpts []datefilter.ClauseOption
}

type Option func(*Editor)

func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) {
		e.log = log
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *Editor) {
		e.metrics = m
	}
}

// WithClauseOptions sets the options Commit builds the clause with.
func WithClauseOptions(opts ...datefilter.ClauseOption) Option {
	return func(e *Editor) {
		e.clauseOpts = append(e.clauseOpts, opts...)
	}
}

// New creates an editor for filters over column. Nothing is being edited until
// Start or Open is called.
func New(column string, opts ...Option) *Editor {
	e := &Editor{
		id:     uuid.New(),
		column: column,
		state:  StateUnset,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("session", e.id.String()).Str("column", column).Logger()
	return e
}

func (e *Editor) ID() uuid.UUID {
	return e.id
}

func (e *Editor) Column() string {
	return e.column
}

func (e *Editor) State() State {
	return e.state
}

// Draft returns the filter being edited. ok is false when nothing is being edited.
func (e *Editor) Draft() (f datefilter.Relative, ok bool) {
	if e.state == StateUnset {
		return datefilter.Relative{}, false
	}
	return e.draft, true
}

// Clause returns the last committed clause, or nil.
func (e *Editor) Clause() *mbql.Clause {
	return e.clause
}

// DisplayName renders the draft over the session column, or an empty string when
// nothing is being edited.
func (e *Editor) DisplayName() string {
	if e.state == StateUnset {
		return ""
	}
	return e.draft.DisplayName(e.column)
}

// Validate reports why the draft cannot be committed.
func (e *Editor) Validate() error {
	if e.state == StateUnset {
		return ErrNoDraft
	}
	return e.draft.Validate()
}

// Start begins editing from initial, or from the default filter when initial is nil.
func (e *Editor) Start(initial *datefilter.Relative) {
	f := datefilter.Default()
	if initial != nil {
		f = *initial
	}
	e.clause = nil
	e.edit(f)
}

// Open begins editing the filter an existing clause describes.
func (e *Editor) Open(c *mbql.Clause) error {
	f, err := datefilter.FromClause(c)
	if err != nil {
		return errors.Wrap(err, "open clause")
	}
	e.Start(&f)
	e.clause = c
	return nil
}

// Apply runs fn over the draft and stores the result.
func (e *Editor) Apply(fn func(datefilter.Relative) datefilter.Relative) error {
	if e.state == StateUnset {
		return ErrNoDraft
	}
	e.edit(fn(e.draft))
	return nil
}

func (e *Editor) SetValue(v int) error {
	return e.Apply(func(f datefilter.Relative) datefilter.Relative { return f.SetValue(v) })
}

func (e *Editor) SetUnit(u datefilter.Unit) error {
	return e.Apply(func(f datefilter.Relative) datefilter.Relative { return f.SetUnit(u) })
}

func (e *Editor) SetDirection(d datefilter.Direction) error {
	return e.Apply(func(f datefilter.Relative) datefilter.Relative { return f.SetDirection(d) })
}

func (e *Editor) ToggleCurrentInterval() error {
	return e.Apply(datefilter.Relative.ToggleCurrentInterval)
}

func (e *Editor) RemoveOffset() error {
	return e.Apply(datefilter.Relative.RemoveOffset)
}

func (e *Editor) SetOffsetValue(v int) error {
	return e.Apply(func(f datefilter.Relative) datefilter.Relative { return f.SetOffsetValue(v) })
}

func (e *Editor) SetOffsetUnit(u datefilter.Unit) error {
	return e.Apply(func(f datefilter.Relative) datefilter.Relative { return f.SetOffsetUnit(u) })
}

// AddOffset stores the offset even when it is rejected. A rejected offset leaves the
// session invalid and is returned as the error.
func (e *Editor) AddOffset(o datefilter.Offset) error {
	var offsetErr error
	err := e.Apply(func(f datefilter.Relative) datefilter.Relative {
		f, offsetErr = f.AddOffset(o)
		return f
	})
	if err != nil {
		return err
	}
	return offsetErr
}

// Commit builds the clause for a valid draft. Invalid drafts fail with
// datefilter.ErrCannotBuildClause and stay editable.
func (e *Editor) Commit() (*mbql.Clause, error) {
	switch e.state {
	case StateUnset:
		return nil, ErrNoDraft
	case StateCommitted:
		return e.clause, nil
	}

	c, err := e.draft.ToClause(e.column, e.clauseOpts...)
	e.metrics.observeCommit(err == nil)
	if err != nil {
		e.log.Debug().Err(err).Str("filter", e.draft.Description()).Msg("commit rejected")
		return nil, err
	}

	e.clause = c
	e.transition(StateCommitted)
	e.log.Info().Str("filter", e.draft.Description()).Msg("filter committed")
	return c, nil
}

// Discard drops the draft and any committed clause.
func (e *Editor) Discard() {
	if e.state == StateUnset {
		return
	}
	e.draft = datefilter.Relative{}
	e.clause = nil
	e.transition(StateUnset)
}

func (e *Editor) edit(f datefilter.Relative) {
	e.transition(StateEditing)
	e.draft = f
	if err := f.Validate(); err != nil {
		e.log.Trace().Err(err).Msg("draft is invalid")
		e.transition(StateInvalid)
		return
	}
	e.transition(StateValid)
}

func (e *Editor) transition(to State) {
	from := e.state
	e.state = to
	e.metrics.observeTransition(from, to)
	e.log.Debug().Str("from", string(from)).Str("to", string(to)).Msg("session transition")
}
