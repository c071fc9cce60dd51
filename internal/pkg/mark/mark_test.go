package mark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " 📉", PriceDown.WithSpace())
	assert.Equal(t, "", Mark("").WithSpace())
	assert.Equal(t, "🔥", BestPrice.String())
}

func TestForPriceChange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PriceDown, ForPriceChange(1000, 900))
	assert.Equal(t, PriceUp, ForPriceChange(900, 1000))
	assert.Equal(t, Mark(""), ForPriceChange(1000, 1000))
}
