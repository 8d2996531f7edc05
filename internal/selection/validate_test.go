package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSingle(t *testing.T) {
	assert.Equal(t, MsgRequired, ValidateSingle(nil, "", true))
	assert.Empty(t, ValidateSingle(nil, "", false))
	assert.Empty(t, ValidateSingle(0, "", true), "zero is a value")
	assert.Equal(t, MsgEmptyValue, ValidateSingle(nil, "stray", false))
	assert.Equal(t, MsgRequired, ValidateSingle(nil, "stray", true), "one message at most")
}

func TestValidateMulti(t *testing.T) {
	assert.Equal(t, MsgRequired, ValidateMulti(nil, true))
	assert.Equal(t, MsgRequired, ValidateMulti([]any{}, true))
	assert.Empty(t, ValidateMulti([]any{5}, true))
	assert.Empty(t, ValidateMulti(nil, false))
}
