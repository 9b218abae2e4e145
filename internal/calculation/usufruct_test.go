package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func TestValueUsufructAtAge_ViagerScale(t *testing.T) {
	params := domain.DefaultLegalParameters2025()

	cases := []struct {
		age          int
		expectedRate float64
	}{
		{age: 15, expectedRate: 0.90},
		{age: 45, expectedRate: 0.60},
		{age: 71, expectedRate: 0.30},
		{age: 95, expectedRate: 0.10},
	}

	for _, c := range cases {
		valuation := ValueUsufructAtAge(decimal.NewMoney(100000), c.age, params)
		assert.InDelta(t, c.expectedRate, valuation.Rate.InexactFloat64(), 0.0001, "age %d", c.age)
		assert.Equal(t, domain.KeyUsufructViagerScale, valuation.ExplanationKey)
	}
}

func TestValueTemporaryUsufruct_CapsAtOneHundredPercent(t *testing.T) {
	params := domain.DefaultLegalParameters2025()

	oneDecade := ValueTemporaryUsufruct(decimal.NewMoney(100000), 10, params)
	assert.True(t, oneDecade.Rate.Equal(params.TemporaryUsufructRate), "got %s", oneDecade.Rate)

	manyDecades := ValueTemporaryUsufruct(decimal.NewMoney(100000), 100, params)
	assert.True(t, manyDecades.Rate.Equal(decimal.NewMoney(1).Decimal), "rate should cap at 100%%, got %s", manyDecades.Rate)
	assert.True(t, manyDecades.UsufructValue.Equal(decimal.NewMoney(100000)))
}
