package geometry

// Bounds is the on-screen rectangle of a day column.
type Bounds struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// ContainsX reports whether x falls inside the column horizontally.
func (b Bounds) ContainsX(x float64) bool {
	return x >= b.Left && x < b.Left+b.Width
}

// ColumnProvider supplies day column bounds from the rendering layer.
type ColumnProvider interface {
	// ColumnBounds returns the bounds of a day column, or false when the
	// column is not laid out.
	ColumnBounds(dayIndex int) (Bounds, bool)
}

// ColumnProviderFunc adapts a function to ColumnProvider.
type ColumnProviderFunc func(dayIndex int) (Bounds, bool)

// ColumnBounds implements ColumnProvider.
func (f ColumnProviderFunc) ColumnBounds(dayIndex int) (Bounds, bool) {
	return f(dayIndex)
}

// UniformColumns lays out seven equally sized columns side by side.
type UniformColumns struct {
	Top    float64
	Left   float64
	Width  float64 // Width of a single column
	Height float64
}

// ColumnBounds implements ColumnProvider.
func (u UniformColumns) ColumnBounds(dayIndex int) (Bounds, bool) {
	if !ValidDay(dayIndex) || u.Width <= 0 {
		return Bounds{}, false
	}
	return Bounds{
		Top:    u.Top,
		Left:   u.Left + float64(dayIndex)*u.Width,
		Width:  u.Width,
		Height: u.Height,
	}, true
}

// DayAt returns the day column under x, if any.
func DayAt(p ColumnProvider, x float64) (int, bool) {
	if p == nil {
		return 0, false
	}
	for day := 0; day < DaysPerWeek; day++ {
		b, ok := p.ColumnBounds(day)
		if ok && b.ContainsX(x) {
			return day, true
		}
	}
	return 0, false
}
