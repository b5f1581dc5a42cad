package datatable

// Selection is a set of selected rows, compared by row key.
// A Selection is not safe for concurrent use.
type Selection struct {
	keys      map[RowKey]struct{}
	listeners []func()
}

// NewSelection creates an empty selection.
func NewSelection() *Selection {
	return &Selection{keys: map[RowKey]struct{}{}}
}

// IsSelected reports whether a row with r's key is selected.
func (s *Selection) IsSelected(r ViewRecord) bool {
	_, ok := s.keys[r.Key]
	return ok
}

// Len returns the number of selected keys.
func (s *Selection) Len() int {
	return len(s.keys)
}

// Toggle flips the selection state of r and returns the new state.
func (s *Selection) Toggle(r ViewRecord) bool {
	if s.IsSelected(r) {
		delete(s.keys, r.Key)
		s.notify()
		return false
	}
	s.keys[r.Key] = struct{}{}
	s.notify()
	return true
}

// Select adds rows to the selection.
func (s *Selection) Select(rows ...ViewRecord) {
	changed := false
	for _, r := range rows {
		if _, ok := s.keys[r.Key]; !ok {
			s.keys[r.Key] = struct{}{}
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Deselect removes rows from the selection.
func (s *Selection) Deselect(rows ...ViewRecord) {
	changed := false
	for _, r := range rows {
		if _, ok := s.keys[r.Key]; ok {
			delete(s.keys, r.Key)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	if len(s.keys) == 0 {
		return
	}
	s.keys = map[RowKey]struct{}{}
	s.notify()
}

// SelectAll selects every row in views.
func (s *Selection) SelectAll(views []ViewRecord) {
	s.Select(views...)
}

// AllSelected reports whether views is non-empty and every row is selected.
func (s *Selection) AllSelected(views []ViewRecord) bool {
	if len(views) == 0 {
		return false
	}
	for _, r := range views {
		if !s.IsSelected(r) {
			return false
		}
	}
	return true
}

// Selected returns the selected rows of views in display order.
func (s *Selection) Selected(views []ViewRecord) []ViewRecord {
	res := make([]ViewRecord, 0, len(s.keys))
	for _, r := range views {
		if s.IsSelected(r) {
			res = append(res, r)
		}
	}
	return res
}

// Retain drops selected keys that no longer appear in views and reports
// whether anything was dropped.
func (s *Selection) Retain(views []ViewRecord) bool {
	live := make(map[RowKey]struct{}, len(views))
	for _, r := range views {
		live[r.Key] = struct{}{}
	}
	changed := false
	for k := range s.keys {
		if _, ok := live[k]; !ok {
			delete(s.keys, k)
			changed = true
		}
	}
	if changed {
		s.notify()
	}
	return changed
}

// OnChanged registers fn to be called after every change of the selection.
func (s *Selection) OnChanged(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Selection) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

// Move returns a copy of views with the row at from moved to position to.
// Both indexes are clamped to the valid range; views itself is not modified.
func Move(views []ViewRecord, from, to int) []ViewRecord {
	res := append([]ViewRecord(nil), views...)
	if len(res) < 2 {
		return res
	}
	from = clamp(from, 0, len(res)-1)
	to = clamp(to, 0, len(res)-1)
	if from == to {
		return res
	}

	moved := res[from]
	if from < to {
		copy(res[from:to], res[from+1:to+1])
	} else {
		copy(res[to+1:from+1], res[to:from])
	}
	res[to] = moved
	return res
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
