package tokenizer

import (
	"bytes"
	"fmt"

	"github.com/shapestone/csv-ingest/internal/model"
)

// State is the quote state of the field currently being assembled.
type State uint8

const (
	// Unquoted is outside any quoted section.
	Unquoted State = iota
	// Quoted is inside a quoted section; delimiters and newlines are literal.
	Quoted
	// QuotePending follows a quote seen while Quoted. The next character decides
	// between an escaped quote and the end of the quoted section.
	QuotePending
	numStates
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unquoted:
		return "Unquoted"
	case Quoted:
		return "Quoted"
	case QuotePending:
		return "QuotePending"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Class is the structural class of an input character.
type Class uint8

const (
	ClassOther     Class = iota // literal content, including '\r' and non-ASCII bytes
	ClassQuote                  // "
	ClassDelimiter              // ,
	ClassLineBreak              // \n (a preceding \r is literal and trimmed away)
	numClasses
)

// Event is a set of actions fired by one transition.
type Event uint8

const (
	// EventAppend appends the input text to the current field.
	EventAppend Event = 1 << iota
	// EventAppendQuote appends one literal quote (an escaped "" pair).
	EventAppendQuote
	// EventEndField closes the current field.
	EventEndField
	// EventEndRow closes the current row.
	EventEndRow
)

type transition struct {
	next  State
	event Event
}

// classTable classifies every byte value. Only ASCII bytes are structural, so a
// byte of a multi-byte UTF-8 sequence is always ClassOther.
var classTable [256]Class

// transitions is indexed [state][class].
var transitions [numStates][numClasses]transition

func init() {
	classTable['"'] = ClassQuote
	classTable[','] = ClassDelimiter
	classTable['\n'] = ClassLineBreak

	transitions[Unquoted][ClassQuote] = transition{Quoted, 0}
	transitions[Unquoted][ClassDelimiter] = transition{Unquoted, EventEndField}
	transitions[Unquoted][ClassLineBreak] = transition{Unquoted, EventEndField | EventEndRow}
	transitions[Unquoted][ClassOther] = transition{Unquoted, EventAppend}

	transitions[Quoted][ClassQuote] = transition{QuotePending, 0}
	transitions[Quoted][ClassDelimiter] = transition{Quoted, EventAppend}
	transitions[Quoted][ClassLineBreak] = transition{Quoted, EventAppend}
	transitions[Quoted][ClassOther] = transition{Quoted, EventAppend}

	transitions[QuotePending][ClassQuote] = transition{Quoted, EventAppendQuote}
	transitions[QuotePending][ClassDelimiter] = transition{Unquoted, EventEndField}
	transitions[QuotePending][ClassLineBreak] = transition{Unquoted, EventEndField | EventEndRow}
	transitions[QuotePending][ClassOther] = transition{Unquoted, EventAppend}
}

// Classify returns the structural class of b.
func Classify(b byte) Class {
	return classTable[b]
}

// Transition returns the next state and the events fired when a character of
// class c is read in state s.
func Transition(s State, c Class) (State, Event) {
	t := transitions[s][c]
	return t.next, t.event
}

// Machine applies the transition table to successive input runs and assembles
// rows. It holds the in-flight field and row, so it can be fed across buffer
// boundaries. A Machine is owned by a single parse and is not safe for
// concurrent use.
type Machine struct {
	state     State
	field     []byte
	quoted    bool // a quote was opened in the current field
	row       model.Row
	rowBytes  int
	widthHint int
}

// NewMachine returns a Machine in the Unquoted state with empty accumulators.
func NewMachine() *Machine {
	return &Machine{field: make([]byte, 0, 64)}
}

// State returns the current quote state.
func (m *Machine) State() State {
	return m.state
}

// Size returns the number of bytes held by the accumulators.
func (m *Machine) Size() int {
	return m.rowBytes + len(m.field)
}

// Step feeds one character class to the machine. text is the input it stands
// for: a run of literal content for ClassOther, or the structural character
// itself (which becomes content when it is literal). Step reports whether a row
// was completed; the row must then be taken with TakeRow before the next Step.
func (m *Machine) Step(c Class, text []byte) bool {
	next, ev := Transition(m.state, c)
	if c == ClassQuote && m.state == Unquoted {
		m.quoted = true
	}

	// A line break on an empty line closes nothing.
	if ev&EventEndRow != 0 && m.lineEmpty() {
		m.state = next
		return false
	}
	m.state = next

	switch {
	case ev&EventAppendQuote != 0:
		m.field = append(m.field, '"')
	case ev&EventAppend != 0:
		m.field = append(m.field, text...)
	}
	if ev&EventEndField != 0 {
		m.endField()
	}
	return ev&EventEndRow != 0
}

// TakeRow returns the completed row and starts a new one.
func (m *Machine) TakeRow() model.Row {
	row := m.row
	if len(row) > m.widthHint {
		m.widthHint = len(row)
	}
	m.row = make(model.Row, 0, m.widthHint)
	m.rowBytes = 0
	return row
}

// Flush ends the input. A pending field or row is emitted exactly once; it
// reports false when nothing was pending.
func (m *Machine) Flush() (model.Row, bool) {
	m.state = Unquoted
	if m.lineEmpty() {
		return nil, false
	}
	m.endField()
	return m.TakeRow(), true
}

// Reset discards any in-flight field and row.
func (m *Machine) Reset() {
	m.state = Unquoted
	m.field = m.field[:0]
	m.quoted = false
	m.row = nil
	m.rowBytes = 0
}

func (m *Machine) lineEmpty() bool {
	return len(m.row) == 0 && len(m.field) == 0 && !m.quoted
}

// endField trims the accumulated field and appends it to the row.
func (m *Machine) endField() {
	value := string(bytes.TrimSpace(m.field))
	m.row = append(m.row, value)
	m.rowBytes += len(value)
	m.field = m.field[:0]
	m.quoted = false
}
