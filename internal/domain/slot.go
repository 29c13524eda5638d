package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Slot метка часового слота в формате "HH:MM - HH:MM"
type Slot string

// slotCatalog двенадцать часовых слотов с 09:00 до 21:00, одинаковые для всех площадок и дат
var slotCatalog = []Slot{
	"09:00 - 10:00", "10:00 - 11:00", "11:00 - 12:00",
	"12:00 - 13:00", "13:00 - 14:00", "14:00 - 15:00",
	"15:00 - 16:00", "16:00 - 17:00", "17:00 - 18:00",
	"18:00 - 19:00", "19:00 - 20:00", "20:00 - 21:00",
}

// Catalog возвращает копию каталога слотов в порядке отображения
func Catalog() []Slot {
	out := make([]Slot, len(slotCatalog))
	copy(out, slotCatalog)
	return out
}

// IsCatalogSlot проверяет, что метка входит в каталог
func IsCatalogSlot(label Slot) bool {
	for _, s := range slotCatalog {
		if s == label {
			return true
		}
	}
	return false
}

// ParseSlot нормализует метку слота и проверяет, что она есть в каталоге
func ParseSlot(s string) (Slot, error) {
	label := Slot(strings.TrimSpace(s))
	if !IsCatalogSlot(label) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return label, nil
}

func (s Slot) String() string {
	return string(s)
}

// Start возвращает час и минуту начала слота
func (s Slot) Start() (hour, minute int, err error) {
	start, _, found := strings.Cut(string(s), slotSeparator)
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}

	t, err := time.Parse(TimeFormat, start)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidSlot, s, err)
	}

	return t.Hour(), t.Minute(), nil
}

// StartOn возвращает момент начала слота в указанную дату (в часовом поясе даты)
func (s Slot) StartOn(date time.Time) (time.Time, error) {
	hour, minute, err := s.Start()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// BookedSlotSet множество занятых слотов одного снимка сервера
type BookedSlotSet map[Slot]struct{}

// NewBookedSlotSet создает множество из перечисленных меток
func NewBookedSlotSet(slots ...Slot) BookedSlotSet {
	set := make(BookedSlotSet, len(slots))
	for _, s := range slots {
		set[s] = struct{}{}
	}
	return set
}

// Contains returns true if the slot is booked
func (b BookedSlotSet) Contains(slot Slot) bool {
	_, ok := b[slot]
	return ok
}

func (b BookedSlotSet) Len() int {
	return len(b)
}

// Sorted возвращает занятые слоты в порядке каталога; метки вне каталога идут в конце
func (b BookedSlotSet) Sorted() []Slot {
	out := make([]Slot, 0, len(b))
	for _, s := range slotCatalog {
		if b.Contains(s) {
			out = append(out, s)
		}
	}
	extra := make([]Slot, 0)
	for s := range b {
		if !IsCatalogSlot(s) {
			extra = append(extra, s)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}
