package controllers

import (
	"unicode/utf8"

	"github.com/flavioribeiro/donut-cc/internal/entities"
)

type visibilityChange int

const (
	showWindows visibilityChange = iota
	hideWindows
	toggleWindows
)

type serviceState struct {
	windows       [entities.MaxWindows]*entities.CaptionWindow
	currentWindow int
	runs          []entities.CaptionTextRun
	pen           entities.Pen
	pts           *int64
}

func newServiceState() *serviceState {
	return &serviceState{pen: entities.DefaultPen()}
}

// CaptionStore owns the decoded state of every caption service. A service
// entry is created by the first block received for it and lives until it is
// cleared. Callers address services by number, out of range numbers are ignored.
type CaptionStore struct {
	services [entities.MaxService + 1]*serviceState
}

func NewCaptionStore() *CaptionStore {
	return &CaptionStore{}
}

// Touch makes sure the service has an entry and records the presentation
// timestamp of the data being decoded for it. A nil pts leaves the following
// runs untimed.
func (s *CaptionStore) Touch(service int, pts *int64) {
	st := s.state(service)
	if st == nil {
		return
	}
	st.pts = nil
	if pts != nil {
		v := *pts
		st.pts = &v
	}
}

func (s *CaptionStore) state(service int) *serviceState {
	if !entities.ValidService(service) {
		return nil
	}
	if s.services[service] == nil {
		s.services[service] = newServiceState()
	}
	return s.services[service]
}

func (s *CaptionStore) existing(service int) *serviceState {
	if !entities.ValidService(service) {
		return nil
	}
	return s.services[service]
}

// AppendChar adds r to the active run, starting a new run when there is none
// or when the pen changed since the active run began.
func (s *CaptionStore) AppendChar(service int, r rune) {
	st := s.state(service)
	if st == nil {
		return
	}
	if n := len(st.runs); n == 0 || st.runs[n-1].Pen() != st.pen {
		st.runs = append(st.runs, newRun(st.pen, st.pts))
	}
	last := &st.runs[len(st.runs)-1]
	last.Text += string(r)
}

func newRun(pen entities.Pen, pts *int64) entities.CaptionTextRun {
	run := entities.CaptionTextRun{
		Attributes: pen.Attributes,
		Foreground: pen.Foreground,
		Background: pen.Background,
		Edge:       pen.Edge,
	}
	if pts != nil {
		v := *pts
		run.PTS = &v
	}
	return run
}

// AppendNewline ends the current row of the active run.
func (s *CaptionStore) AppendNewline(service int) {
	st := s.existing(service)
	if st == nil || len(st.runs) == 0 {
		return
	}
	st.runs[len(st.runs)-1].Text += "\n"
}

// Backspace removes the last character of the most recent run, dropping the
// run once it is empty.
func (s *CaptionStore) Backspace(service int) {
	st := s.existing(service)
	if st == nil || len(st.runs) == 0 {
		return
	}
	last := &st.runs[len(st.runs)-1]
	_, size := utf8.DecodeLastRuneInString(last.Text)
	last.Text = last.Text[:len(last.Text)-size]
	if last.Text == "" {
		st.runs = st.runs[:len(st.runs)-1]
	}
}

// ClearText drops every run of the service.
func (s *CaptionStore) ClearText(service int) {
	if st := s.existing(service); st != nil {
		st.runs = nil
	}
}

func (s *CaptionStore) SelectWindow(service, window int) {
	if st := s.state(service); st != nil {
		st.currentWindow = window & (entities.MaxWindows - 1)
	}
}

// DefineWindow stores a window definition and makes it the current window.
func (s *CaptionStore) DefineWindow(service int, w entities.CaptionWindow) {
	st := s.state(service)
	if st == nil {
		return
	}
	w.ID &= entities.MaxWindows - 1
	st.windows[w.ID] = &w
	st.currentWindow = w.ID
}

// DeleteWindows removes the definitions of the windows set in bitmap, bit n
// addressing window n. The current window id is left untouched.
func (s *CaptionStore) DeleteWindows(service int, bitmap byte) {
	st := s.existing(service)
	if st == nil {
		return
	}
	for id := 0; id < entities.MaxWindows; id++ {
		if bitmap&(1<<id) != 0 {
			st.windows[id] = nil
		}
	}
}

func (s *CaptionStore) changeVisibility(service int, bitmap byte, change visibilityChange) {
	st := s.existing(service)
	if st == nil {
		return
	}
	for id, w := range st.windows {
		if w == nil || bitmap&(1<<id) == 0 {
			continue
		}
		switch change {
		case showWindows:
			w.Visible = true
		case hideWindows:
			w.Visible = false
		case toggleWindows:
			w.Visible = !w.Visible
		}
	}
}

func (s *CaptionStore) SetPenAttributes(service int, attributes entities.PenAttributes) {
	if st := s.state(service); st != nil {
		st.pen.Attributes = attributes
	}
}

func (s *CaptionStore) SetPenColor(service int, foreground, background, edge entities.PenColor) {
	if st := s.state(service); st != nil {
		st.pen.Foreground = foreground
		st.pen.Background = background
		st.pen.Edge = edge
	}
}

// ResetService drops windows and text, selects window 0 and restores the default pen.
func (s *CaptionStore) ResetService(service int) {
	st := s.existing(service)
	if st == nil {
		return
	}
	pts := st.pts
	*st = *newServiceState()
	st.pts = pts
}

// HasText reports whether the service holds at least one non-empty run.
func (s *CaptionStore) HasText(service int) bool {
	st := s.existing(service)
	if st == nil {
		return false
	}
	for _, r := range st.runs {
		if r.Text != "" {
			return true
		}
	}
	return false
}

// Snapshot copies the decoded state of a service.
func (s *CaptionStore) Snapshot(service int) (entities.DecodedCaption, bool) {
	st := s.existing(service)
	if st == nil {
		return entities.DecodedCaption{}, false
	}

	c := entities.DecodedCaption{
		Service:       service,
		Windows:       map[int]entities.CaptionWindow{},
		CurrentWindow: st.currentWindow,
		Runs:          make([]entities.CaptionTextRun, 0, len(st.runs)),
	}
	for id, w := range st.windows {
		if w != nil {
			c.Windows[id] = *w
		}
	}
	for _, r := range st.runs {
		if r.PTS != nil {
			v := *r.PTS
			r.PTS = &v
		}
		c.Runs = append(c.Runs, r)
	}
	if st.pts != nil {
		v := *st.pts
		c.PTS = &v
	}
	return c, true
}

// Services lists the services holding an entry, in ascending order.
func (s *CaptionStore) Services() []int {
	services := []int{}
	for service := entities.MinService; service <= entities.MaxService; service++ {
		if s.services[service] != nil {
			services = append(services, service)
		}
	}
	return services
}

func (s *CaptionStore) ClearService(service int) {
	if entities.ValidService(service) {
		s.services[service] = nil
	}
}

func (s *CaptionStore) ClearAll() {
	for i := range s.services {
		s.services[i] = nil
	}
}
