package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.FieldType.IsValid() {
		return fmt.Errorf("%w: unknown field type %q", ErrInvalidInput, req.FieldType)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
