package selection

// Validation messages.
const (
	MsgRequired   = "Value is required"
	MsgEmptyValue = "Value cannot be empty"
)

// ValidateSingle returns the violation for a single-select state, or "".
// Text left behind without a value is reported even when not required.
func ValidateSingle(value any, text string, required bool) string {
	if value != nil {
		return ""
	}
	if required {
		return MsgRequired
	}
	if text != "" {
		return MsgEmptyValue
	}
	return ""
}

// ValidateMulti returns the violation for a multi-select state, or "".
func ValidateMulti(values []any, required bool) string {
	if required && len(values) == 0 {
		return MsgRequired
	}
	return ""
}
