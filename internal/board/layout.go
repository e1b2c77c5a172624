package board

// Slot is one of the fixed grid positions: either a real instance or a
// placeholder inviting the user to add a widget.
type Slot struct {
	Instance *Instance
	Empty    bool
}

// Slots projects the store onto the visible grid: real instances first in
// display order, the remainder filled with empty placeholders so the grid
// always shows exactly Capacity slots.
func (s *Store) Slots() []Slot {
	instances := s.List()

	slots := make([]Slot, 0, s.capacity)
	for _, instance := range instances {
		slots = append(slots, Slot{Instance: instance})
	}
	for len(slots) < s.capacity {
		slots = append(slots, Slot{Empty: true})
	}
	return slots
}
