package ui

// FocusManager tracks and rotates focus across the trigger sections.
type FocusManager struct {
	Current  string   // ID of the focused section
	Order    []string // Tab order
	OnChange func(from, to string)
}

// NewFocusManager focuses the first ID in order.
func NewFocusManager(order []string, onChange func(from, to string)) *FocusManager {
	f := &FocusManager{Order: order, OnChange: onChange}
	if len(order) > 0 {
		f.Current = order[0]
		if onChange != nil {
			onChange("", f.Current)
		}
	}
	return f
}

// Index returns the position of the focused ID in Order, or -1.
func (f *FocusManager) Index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

// Next advances focus to the next section, wrapping around.
func (f *FocusManager) Next() string {
	return f.move(1)
}

// Prev moves focus to the previous section, wrapping around.
func (f *FocusManager) Prev() string {
	return f.move(-1)
}

func (f *FocusManager) move(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.Index()
	if idx < 0 {
		idx = 0
		delta = 0
	}
	n := len(f.Order)
	f.set(f.Order[((idx+delta)%n+n)%n])
	return f.Current
}

// SetFocus focuses id. Returns false if id is not in Order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
