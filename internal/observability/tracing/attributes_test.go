package tracing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestSafeAttributesDropsCustomerContactData(t *testing.T) {
	attrs := SafeAttributes(
		attribute.Int64("customer_id", 7),
		attribute.String("customer.tax_number", "1234567890"),
		attribute.String("phone", "0212"),
		attribute.String("kind", "DEBIT"),
	)

	keys := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		keys = append(keys, string(attr.Key))
	}
	assert.Equal(t, []string{"customer_id", "kind"}, keys)
}

func TestSafeErrorKeepsTypeOnly(t *testing.T) {
	assert.Nil(t, SafeError(nil))
	assert.Equal(t, "*errors.errorString", SafeError(errors.New("tax number 123 rejected")).Error())
}
