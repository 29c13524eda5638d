package domain

import (
	"fmt"
	"strings"
)

// FieldType тип площадки
type FieldType string

const (
	FieldBasket FieldType = "basket"
	FieldFutsal FieldType = "futsal"
)

// FieldTypes все поддерживаемые площадки. Сетка слотов у них общая
var FieldTypes = []FieldType{FieldBasket, FieldFutsal}

// ParseFieldType разбирает тип площадки без учета регистра
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basket", "basketball":
		return FieldBasket, nil
	case "futsal":
		return FieldFutsal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
	}
}

// IsValid returns true if the field type is one of the known fields
func (f FieldType) IsValid() bool {
	return f == FieldBasket || f == FieldFutsal
}

func (f FieldType) String() string {
	return string(f)
}

// DisplayName человекочитаемое название площадки
func (f FieldType) DisplayName() string {
	switch f {
	case FieldBasket:
		return "Basketball court"
	case FieldFutsal:
		return "Futsal court"
	default:
		return string(f)
	}
}
