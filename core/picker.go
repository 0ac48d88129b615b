package core

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

const NoUsersFound = "No users found"

// An Option of the picker. Value is a user id, Label is the user name.
type Option struct {
	Value string
	Label string
}

// UserPicker is a searchable single-select list of the users which have no permission row yet.
//
// Every mutation calls refresh, so the filtered view always matches the option set.
type UserPicker struct {
	options   []Option
	visible   []Option // options filtered by query, refreshed on every mutation
	query     string
	selected  string // option value, empty if nothing is selected
	matcher   *search.Matcher
	noResults string
}

// NewUserPicker creates a picker offering the given users in the given order.
func NewUserPicker(users []User) *UserPicker {
	var p = &UserPicker{
		options:   make([]Option, 0, len(users)),
		matcher:   search.New(language.Und, search.IgnoreCase),
		noResults: NoUsersFound,
	}
	for _, u := range users {
		p.options = append(p.options, Option{Value: u.ID, Label: u.Name})
	}
	p.refresh()
	return p
}

func (p *UserPicker) matches(label string) bool {
	if p.query == "" {
		return true
	}
	start, _ := p.matcher.IndexString(label, p.query)
	return start >= 0
}

func (p *UserPicker) refresh() {
	p.visible = p.visible[:0]
	for _, o := range p.options {
		if p.matches(o.Label) {
			p.visible = append(p.visible, o)
		}
	}
}

func (p *UserPicker) index(value string) int {
	for i, o := range p.options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Contains returns whether an option with the given value is offered, regardless of the filter.
func (p *UserPicker) Contains(value string) bool {
	return p.index(value) >= 0
}

// Filter sets the search query. Matching is a substring match on the labels which ignores case and character width,
// so "ann" matches "ANN" and fullwidth "ＡＮＮ". Accents are significant: "jose" does not match "José".
func (p *UserPicker) Filter(query string) {
	p.query = strings.TrimSpace(query)
	p.refresh()
}

func (p *UserPicker) Query() string {
	return p.query
}

// Select highlights the option with the given value. Only visible options can be selected.
// An empty value clears the selection.
func (p *UserPicker) Select(value string) bool {
	if value == "" {
		p.selected = ""
		return true
	}
	for _, o := range p.visible {
		if o.Value == value {
			p.selected = value
			return true
		}
	}
	return false
}

// Selected returns the value of the highlighted option.
func (p *UserPicker) Selected() (string, bool) {
	return p.selected, p.selected != ""
}

// RemoveSelected removes the highlighted option and clears the selection.
func (p *UserPicker) RemoveSelected() (Option, bool) {
	return p.remove(p.selected)
}

// remove removes the option with the given value. The selection is cleared if it pointed to that option.
func (p *UserPicker) remove(value string) (Option, bool) {
	var i = p.index(value)
	if i < 0 {
		return Option{}, false
	}
	var removed = p.options[i]
	p.options = append(p.options[:i], p.options[i+1:]...)
	if p.selected == value {
		p.selected = ""
	}
	p.refresh()
	return removed, true
}

// Restore appends an option for the given user. It does nothing if the user is already offered.
func (p *UserPicker) Restore(u User) {
	if p.Contains(u.ID) {
		return
	}
	p.options = append(p.options, Option{Value: u.ID, Label: u.Name})
	p.refresh()
}

// Options returns a copy of all options, ignoring the filter.
func (p *UserPicker) Options() []Option {
	return append([]Option(nil), p.options...)
}

// Visible returns a copy of the options which match the filter.
func (p *UserPicker) Visible() []Option {
	return append([]Option(nil), p.visible...)
}

// NoResults returns the placeholder text if the filtered view is empty.
func (p *UserPicker) NoResults() (string, bool) {
	if len(p.visible) == 0 {
		return p.noResults, true
	}
	return "", false
}
