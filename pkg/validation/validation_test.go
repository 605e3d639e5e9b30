package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"max=5"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=3"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	phone := "123456"
	err := Struct(sample{Name: "toolongname", Phone: &phone})
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldError{
		{Field: "name", Code: "max"},
		{Field: "phone", Code: "max"},
	}, verr.Fields)
}

func TestStructAcceptsValid(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "Acme"}))
}
