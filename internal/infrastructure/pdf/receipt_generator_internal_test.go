package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "K 0.00", money("K", decimal.Zero))
	assert.Equal(t, "K 950.50", money("K", decimal.RequireFromString("950.5")))
	assert.Equal(t, "K 1,250.00", money("K", decimal.NewFromInt(1250)))
	assert.Equal(t, "$ 1,000,000.25", money("$", decimal.RequireFromString("1000000.25")))
	assert.Equal(t, "-K 1,000.00", money("K", decimal.NewFromInt(-1000)))
}
