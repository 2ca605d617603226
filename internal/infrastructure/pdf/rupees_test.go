package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRupees(t *testing.T) {
	assert.Equal(t, "Rs. 1,500.00", rupees(decimal.NewFromInt(1500)))
	assert.Equal(t, "-Rs. 0.20", rupees(decimal.RequireFromString("-0.2")))
	assert.Equal(t, "Rs. 0.00", rupees(decimal.RequireFromString("-0.004")), "redondeo a cero sin signo")
}
