package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/megastore-web/pkg/money"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "$ 12.345,50", money.Format(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "$ 500,00", money.Format(decimal.NewFromInt(500)))
	assert.Equal(t, "0,99", money.Number(decimal.RequireFromString("0.985")))
}

func TestInt(t *testing.T) {
	assert.Equal(t, "150.000", money.Int(150000))
	assert.Equal(t, "7", money.Int(7))
}
