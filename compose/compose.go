// Package compose holds the client-side input machinery for the
// message box: the mention autocomplete state machine and the
// ordering guards for paged history loads.
package compose

import (
	"strings"
	"unicode"
)

type State int

const (
	StateIdle State = iota
	StateOpen
)

// Member is one autocomplete candidate. Order matters: suggestions are
// served in membership-list order.
type Member struct {
	ID   uint
	Name string
}

// mentionSpan records a committed mention's location in the text so a
// caret landing inside it reopens the machine in edit mode.
type mentionSpan struct {
	MemberID uint
	Start    int
	End      int
}

// Machine is the autocomplete state machine. It is driven by exactly
// two inputs, text changes and caret moves, and owns no rendering.
type Machine struct {
	state   State
	members []Member

	text  string
	caret int

	query            string
	anchorStart      int
	anchorEnd        int
	editingMentionID uint
	highlight        int

	spans []mentionSpan

	// guard swallows the one text change caused by a programmatic
	// commit, so the machine does not immediately reopen.
	guard bool
}

func NewMachine(members []Member) *Machine {
	return &Machine{members: members}
}

func (m *Machine) State() State            { return m.state }
func (m *Machine) Query() string           { return m.query }
func (m *Machine) Text() string            { return m.text }
func (m *Machine) Caret() int              { return m.caret }
func (m *Machine) HighlightIndex() int     { return m.highlight }
func (m *Machine) EditingMentionID() uint  { return m.editingMentionID }
func (m *Machine) SetMembers(ms []Member)  { m.members = ms }

// SetText feeds a text change. The caret is the position after the
// change.
func (m *Machine) SetText(text string, caret int) {
	m.text = text
	m.caret = clamp(caret, 0, len([]rune(text)))
	if m.guard {
		m.guard = false
		m.close()
		return
	}
	m.refresh()
}

// SetCaret feeds a caret move without a text change.
func (m *Machine) SetCaret(caret int) {
	m.caret = clamp(caret, 0, len([]rune(m.text)))
	m.refresh()
}

// refresh re-derives the state from (text, caret): re-edit mode when
// the caret sits inside a committed mention, otherwise a backward scan
// for an open @token, otherwise Idle.
func (m *Machine) refresh() {
	prevQuery := m.query

	if span, ok := m.spanAtCaret(); ok {
		name := m.memberName(span.MemberID)
		m.state = StateOpen
		m.query = name
		m.anchorStart = span.Start
		m.anchorEnd = span.End
		m.editingMentionID = span.MemberID
		if m.query != prevQuery {
			m.highlight = 0
		}
		return
	}

	start, query, ok := scanMentionToken(m.text, m.caret)
	if !ok {
		m.close()
		return
	}

	m.state = StateOpen
	m.query = query
	m.anchorStart = start
	m.anchorEnd = m.caret
	m.editingMentionID = 0
	if m.query != prevQuery {
		m.highlight = 0
	}
}

// Suggestions filters the members by a case-insensitive contains match
// on the query, preserving membership order. An empty query matches
// everyone.
func (m *Machine) Suggestions() []Member {
	if m.state != StateOpen {
		return nil
	}
	query := strings.ToLower(m.query)
	var out []Member
	for _, member := range m.members {
		if query == "" || strings.Contains(strings.ToLower(member.Name), query) {
			out = append(out, member)
		}
	}
	return out
}

// MoveHighlight cycles the highlight by delta modulo the suggestion
// count.
func (m *Machine) MoveHighlight(delta int) {
	suggestions := m.Suggestions()
	if len(suggestions) == 0 {
		return
	}
	m.highlight = ((m.highlight+delta)%len(suggestions) + len(suggestions)) % len(suggestions)
}

// Commit replaces the open token span with "@Name " for the
// highlighted suggestion and closes the machine. The trailing space is
// mandatory so the server-side resolver round-trips the text. Returns
// false when there is nothing to commit.
func (m *Machine) Commit() bool {
	suggestions := m.Suggestions()
	if m.state != StateOpen || len(suggestions) == 0 {
		return false
	}
	if m.highlight >= len(suggestions) {
		m.highlight = 0
	}
	chosen := suggestions[m.highlight]

	runes := []rune(m.text)
	insert := "@" + chosen.Name + " "

	if m.editingMentionID != 0 {
		// Absorb the old mention's trailing space so the replacement
		// does not double it.
		if m.anchorEnd < len(runes) && runes[m.anchorEnd] == ' ' {
			m.anchorEnd++
		}
		m.removeSpan(m.anchorStart)
	}

	before := string(runes[:m.anchorStart])
	after := string(runes[m.anchorEnd:])

	m.text = before + insert + after
	m.caret = m.anchorStart + len([]rune(insert))
	m.shiftSpans(m.anchorStart, len([]rune(insert))-(m.anchorEnd-m.anchorStart))
	// Span excludes the trailing space: the caret after the space must
	// not count as "inside" the mention.
	m.spans = append(m.spans, mentionSpan{
		MemberID: chosen.ID,
		Start:    m.anchorStart,
		End:      m.anchorStart + len([]rune(insert)) - 1,
	})

	m.close()
	m.guard = true
	return true
}

// Cancel forces Idle without committing.
func (m *Machine) Cancel() {
	m.close()
}

func (m *Machine) close() {
	m.state = StateIdle
	m.query = ""
	m.anchorStart = 0
	m.anchorEnd = 0
	m.editingMentionID = 0
	m.highlight = 0
}

// spanAtCaret returns the committed mention the caret sits inside, if
// the text under the span still spells that mention.
func (m *Machine) spanAtCaret() (mentionSpan, bool) {
	runes := []rune(m.text)
	for _, span := range m.spans {
		if m.caret <= span.Start || m.caret >= span.End {
			continue
		}
		if span.End > len(runes) {
			continue
		}
		name := m.memberName(span.MemberID)
		if name == "" || string(runes[span.Start:span.End]) != "@"+name {
			continue
		}
		return span, true
	}
	return mentionSpan{}, false
}

func (m *Machine) memberName(id uint) string {
	for _, member := range m.members {
		if member.ID == id {
			return member.Name
		}
	}
	return ""
}

func (m *Machine) removeSpan(start int) {
	out := m.spans[:0]
	for _, span := range m.spans {
		if span.Start != start {
			out = append(out, span)
		}
	}
	m.spans = out
}

func (m *Machine) shiftSpans(from, delta int) {
	for i := range m.spans {
		if m.spans[i].Start >= from {
			m.spans[i].Start += delta
			m.spans[i].End += delta
		}
	}
}

// scanMentionToken walks backward from the caret looking for an open
// "@partial" token. The token must sit at text start or right after
// whitespace, and the partial may span at most two word segments.
func scanMentionToken(text string, caret int) (int, string, bool) {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	spaces := 0
	for i := caret - 1; i >= 0; i-- {
		r := runes[i]
		if r == '@' {
			if i > 0 && !unicode.IsSpace(runes[i-1]) {
				return 0, "", false
			}
			prefix := string(runes[i+1 : caret])
			return i, prefix, true
		}
		if unicode.IsSpace(r) {
			spaces++
			if spaces > 1 || r != ' ' {
				return 0, "", false
			}
			continue
		}
		if !unicode.IsLetter(r) {
			return 0, "", false
		}
	}
	return 0, "", false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
