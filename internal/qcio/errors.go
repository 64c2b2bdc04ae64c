package qcio

import (
	"errors"
	"fmt"
)

// ConversionError reports a document field that could not be mapped
// onto the internal records. Field is a dotted path into the external
// shape, e.g. "input_data.structure.units".
type ConversionError struct {
	Field   string
	Message string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert field %q: %s", e.Field, e.Message)
}

// IsConversionError reports whether err wraps a *ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}

func conversionErrorf(field, format string, args ...any) error {
	return &ConversionError{Field: field, Message: fmt.Sprintf(format, args...)}
}
