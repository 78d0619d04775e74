package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Subject string `validate:"required,notblank"`
}

func TestNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation(TagNotBlank, NotBlank))

	tests := []struct {
		value string
		valid bool
	}{
		{"Operating Systems", true},
		{"  x  ", true},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		err := v.Struct(sample{Subject: tt.value})
		if tt.valid {
			assert.NoError(t, err, "value %q", tt.value)
		} else {
			assert.Error(t, err, "value %q", tt.value)
		}
	}
}

func TestRegisterBindingValidators(t *testing.T) {
	assert.NoError(t, RegisterBindingValidators())
	assert.NoError(t, RegisterBindingValidators())
}
