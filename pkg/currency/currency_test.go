package currency_test

import (
	"testing"

	"github.com/fintechlab/bankapi/pkg/currency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsRegistered(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	for _, code := range []currency.Code{"USD", "EUR", "GBP", "JPY", "KWD"} {
		assert.True(currency.IsSupported(code), "%s should be supported", code)
	}
	assert.False(currency.IsSupported("XXX"))
}

func TestDecimals(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	usd, err := currency.Get("USD")
	require.NoError(err)
	assert.Equal(2, usd.Decimals)

	jpy, err := currency.Get("JPY")
	require.NoError(err)
	assert.Equal(0, jpy.Decimals)

	kwd, err := currency.Get("KWD")
	require.NoError(err)
	assert.Equal(3, kwd.Decimals)
}

func TestIsValidFormat(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.True(currency.IsValidFormat("USD"))
	assert.False(currency.IsValidFormat("US"))
	assert.False(currency.IsValidFormat("USDX"))
	assert.False(currency.IsValidFormat("U1D"))
	assert.False(currency.IsValidFormat(""))
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	reg := currency.NewRegistry()
	reg.Register("TST", currency.Meta{Decimals: 2, Symbol: "t"})
	assert.True(reg.IsSupported("TST"))

	meta, err := reg.Get("TST")
	require.NoError(err)
	assert.Equal("t", meta.Symbol)

	_, err = reg.Get("ZZZ")
	assert.Error(err)
	assert.NotContains(reg.ListSupported(), currency.Code("ZZZ"))
}
