package scene

// Selection holds the viewer's selected point. Activating the selected
// point again clears the selection.
type Selection struct {
	point    Point
	selected bool

	// OnChange is called after every change.
	OnChange func(p Point, selected bool)
}

// Activate toggles p. Points are compared by name.
func (s *Selection) Activate(p Point) {
	if s.selected && s.point.Name == p.Name {
		s.Clear()
		return
	}
	s.Select(p)
}

// Select replaces the selection with p.
func (s *Selection) Select(p Point) {
	s.point, s.selected = p, true
	s.changed()
}

// Clear drops the selection.
func (s *Selection) Clear() {
	if !s.selected {
		return
	}
	s.point, s.selected = Point{}, false
	s.changed()
}

// Selected returns the current selection.
func (s *Selection) Selected() (Point, bool) {
	return s.point, s.selected
}

// Revalidate clears the selection when cfg has no point with its name, and
// refreshes the stored point otherwise.
func (s *Selection) Revalidate(cfg Configuration) {
	if !s.selected {
		return
	}
	p, ok := cfg.Find(s.point.Name)
	if !ok {
		s.Clear()
		return
	}
	s.point = p
}

func (s *Selection) changed() {
	if s.OnChange != nil {
		s.OnChange(s.point, s.selected)
	}
}
