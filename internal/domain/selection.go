package domain

// SelectionSet множество выбранных слотов с сохранением порядка выбора.
// Проверку допустимости (Available/Selected) выполняет вызывающая сторона
type SelectionSet struct {
	order []Slot
	index map[Slot]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{index: make(map[Slot]struct{})}
}

// Toggle убирает слот, если он выбран, иначе добавляет. Возвращает true, если слот теперь выбран
func (s *SelectionSet) Toggle(slot Slot) bool {
	if s.index == nil {
		s.index = make(map[Slot]struct{})
	}

	if _, ok := s.index[slot]; ok {
		delete(s.index, slot)
		for i, v := range s.order {
			if v == slot {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false
	}

	s.index[slot] = struct{}{}
	s.order = append(s.order, slot)
	return true
}

func (s *SelectionSet) Contains(slot Slot) bool {
	_, ok := s.index[slot]
	return ok
}

func (s *SelectionSet) Clear() {
	s.order = nil
	s.index = make(map[Slot]struct{})
}

func (s *SelectionSet) Len() int {
	return len(s.order)
}

// Labels возвращает копию выбранных слотов в порядке выбора
func (s *SelectionSet) Labels() []Slot {
	out := make([]Slot, len(s.order))
	copy(out, s.order)
	return out
}
