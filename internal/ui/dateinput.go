package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/momentum/internal/model"
)

const (
	partYear = iota
	partMonth
	partDay
	partCount
)

var errDayRequired = errors.New("day is required")

// dateSegments describes the year, month and day boxes in entry order.
var dateSegments = [partCount]struct {
	placeholder string
	width       int
}{
	{"YYYY", 4},
	{"MM", 2},
	{"DD", 2},
}

// dateInput edits a deadline as year, month and day segments. Typing past a
// full segment moves on to the next one; backspace in an empty segment moves
// back.
type dateInput struct {
	parts  [partCount]textinput.Model
	active int
}

func digitsOnly(s string) error {
	if strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) >= 0 {
		return fmt.Errorf("digits only")
	}
	return nil
}

func newDateInput() dateInput {
	var d dateInput
	for i, seg := range dateSegments {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = seg.placeholder
		ti.CharLimit = seg.width
		ti.Width = seg.width + 2
		ti.Validate = digitsOnly
		d.parts[i] = ti
	}
	return d
}

func (d *dateInput) Focus() tea.Cmd {
	return d.activate(partYear)
}

func (d *dateInput) Blur() {
	for i := range d.parts {
		d.parts[i].Blur()
	}
}

func (d *dateInput) activate(idx int) tea.Cmd {
	d.active = idx
	d.Blur()
	return d.parts[idx].Focus()
}

// SetValue fills the segments from a YYYY-MM-DD string; nil clears them.
func (d *dateInput) SetValue(date *string) {
	var parts []string
	if date != nil {
		parts = strings.SplitN(*date, "-", partCount)
	}
	for i := range d.parts {
		v := ""
		if i < len(parts) {
			v = parts[i]
		}
		d.parts[i].SetValue(v)
	}
}

// SetDate fills the segments from day.
func (d *dateInput) SetDate(day time.Time) {
	d.SetValue(model.DatePtr(day))
}

func (d *dateInput) IsEmpty() bool {
	for _, p := range d.parts {
		if p.Value() != "" {
			return false
		}
	}
	return true
}

func (d *dateInput) part(idx int) string {
	return strings.TrimSpace(d.parts[idx].Value())
}

// Value returns the entered deadline, or nil when every segment is empty.
// A missing year or month is taken from today; the day is required.
func (d *dateInput) Value(today time.Time) (*string, error) {
	if d.IsEmpty() {
		return nil, nil
	}
	day := d.part(partDay)
	if day == "" {
		return nil, errDayRequired
	}

	year, month := d.part(partYear), d.part(partMonth)
	if year == "" {
		year = fmt.Sprint(today.Year())
	}
	if month == "" {
		month = fmt.Sprint(int(today.Month()))
	}

	s := zeroPad(year, 4) + "-" + zeroPad(month, 2) + "-" + zeroPad(day, 2)
	return model.NormalizeDeadline(&s)
}

func zeroPad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat("0", n) + s
	}
	return s
}

func (d dateInput) Update(msg tea.Msg) (dateInput, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		d.parts[d.active], cmd = d.parts[d.active].Update(msg)
		return d, cmd
	}

	switch keyMsg.Type {
	case tea.KeyCtrlU:
		d.SetValue(nil)
		cmd := d.activate(partYear)
		return d, cmd
	case tea.KeyRight:
		if d.active < partDay {
			cmd := d.activate(d.active + 1)
			return d, cmd
		}
		return d, nil
	case tea.KeyLeft:
		if d.active > partYear {
			cmd := d.activate(d.active - 1)
			return d, cmd
		}
		return d, nil
	case tea.KeyBackspace:
		if d.parts[d.active].Value() == "" && d.active > partYear {
			cmd := d.activate(d.active - 1)
			return d, cmd
		}
	case tea.KeyRunes:
		full := len(d.parts[d.active].Value()) >= dateSegments[d.active].width
		if full && d.active < partDay {
			cmd := d.activate(d.active + 1)
			var typed tea.Cmd
			d.parts[d.active], typed = d.parts[d.active].Update(msg)
			return d, tea.Batch(cmd, typed)
		}
	}

	var cmd tea.Cmd
	d.parts[d.active], cmd = d.parts[d.active].Update(msg)
	return d, cmd
}

func (d dateInput) View() string {
	views := make([]string, partCount)
	for i, p := range d.parts {
		views[i] = p.View()
	}
	return strings.Join(views, " - ")
}
