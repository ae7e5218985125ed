// Package staging keeps the partially typed multi-field forms of the tracker
// until they are submitted.
//
// Every form runs its own small wizard:
//
//	Idle -> Collecting -> Submitting -> Applied
//	                                 -> Rejected -> Collecting (on further edits)
//
// At most one form is the active input at a time.
package staging

import (
	"errors"
	"fmt"
)

const (
	FieldSecurityName = "Security Name"
	FieldDate         = "Date"
	FieldAmount       = "Amount"
	FieldPricePerUnit = "Price per Unit"
	FieldCurrentPrice = "Current Price per Unit"
)

var (
	ErrNoActiveInput = errors.New("no active input")
	ErrWrongInput    = errors.New("form is not the active input")
	ErrUnknownField  = errors.New("unknown field")
)

type Kind int

const (
	SecurityForm Kind = iota
	EntryForm
	PriceForm
)

func (k Kind) String() string {
	switch k {
	case SecurityForm:
		return "security"
	case EntryForm:
		return "entry"
	case PriceForm:
		return "price"
	default:
		return fmt.Sprintf("form(%d)", int(k))
	}
}

type State int

const (
	Idle State = iota
	Collecting
	Submitting
	Applied
	Rejected
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Collecting:
		return "collecting"
	case Submitting:
		return "submitting"
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type Field struct {
	Name  string
	Value string
}

type Form struct {
	kind   Kind
	state  State
	fields []Field
}

func newForm(kind Kind, names ...string) *Form {
	fields := make([]Field, 0, len(names))
	for _, n := range names {
		fields = append(fields, Field{Name: n})
	}
	return &Form{kind: kind, fields: fields}
}

func (f *Form) Kind() Kind   { return f.kind }
func (f *Form) State() State { return f.state }

// Fields returns a copy of the form fields in display order.
func (f *Form) Fields() []Field {
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

func (f *Form) Value(name string) (string, bool) {
	for _, fl := range f.fields {
		if fl.Name == name {
			return fl.Value, true
		}
	}
	return "", false
}

// ValueOrEmpty is Value with missing fields read as "".
func (f *Form) ValueOrEmpty(name string) string {
	v, _ := f.Value(name)
	return v
}

func (f *Form) set(name, value string) bool {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
			return true
		}
	}
	return false
}

func (f *Form) clear() {
	for i := range f.fields {
		f.fields[i].Value = ""
	}
}

// Staging owns all forms and the active input selector.
type Staging struct {
	forms       map[Kind]*Form
	current     *Kind
	clearOnOpen bool
}

// New creates the forms used by the tracker. With clearOnOpen the buffers are
// emptied every time a form is opened, otherwise the last typed text persists.
func New(clearOnOpen bool) *Staging {
	return &Staging{
		forms: map[Kind]*Form{
			SecurityForm: newForm(SecurityForm, FieldSecurityName),
			EntryForm:    newForm(EntryForm, FieldDate, FieldAmount, FieldPricePerUnit),
			PriceForm:    newForm(PriceForm, FieldCurrentPrice),
		},
		clearOnOpen: clearOnOpen,
	}
}

func (s *Staging) Form(kind Kind) *Form {
	return s.forms[kind]
}

// Active returns the active form, if any.
func (s *Staging) Active() (*Form, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.forms[*s.current], true
}

// Open makes kind the active input and starts collecting.
func (s *Staging) Open(kind Kind) {
	f := s.forms[kind]
	if s.clearOnOpen {
		f.clear()
	}
	f.state = Collecting
	if active, ok := s.Active(); ok && active != f && active.state != Applied {
		active.state = Idle
	}
	s.current = &kind
}

// Set writes value into the named field of the active form. Unknown fields
// are dropped and reported with ErrUnknownField.
func (s *Staging) Set(name, value string) error {
	f, ok := s.Active()
	if !ok {
		return ErrNoActiveInput
	}
	if !f.set(name, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.state == Rejected {
		f.state = Collecting
	}
	return nil
}

// Submit moves kind to Submitting. kind must be the active input.
func (s *Staging) Submit(kind Kind) (*Form, error) {
	f, ok := s.Active()
	if !ok {
		return nil, fmt.Errorf("%w: submit %s", ErrNoActiveInput, kind)
	}
	if f.kind != kind {
		return nil, fmt.Errorf("%w: submit %s while %s is active", ErrWrongInput, kind, f.kind)
	}
	f.state = Submitting
	return f, nil
}

// Apply finishes a submission and releases the active input.
func (s *Staging) Apply() {
	if f, ok := s.Active(); ok {
		f.state = Applied
	}
	s.current = nil
}

// Reject keeps the form active so the user can correct it.
func (s *Staging) Reject() {
	if f, ok := s.Active(); ok {
		f.state = Rejected
	}
}

// Cancel abandons the active form without submitting it.
func (s *Staging) Cancel() {
	if f, ok := s.Active(); ok {
		f.state = Idle
	}
	s.current = nil
}
