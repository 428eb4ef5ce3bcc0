package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiatCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected FiatCode
		wantErr  bool
	}{
		{name: "Upper case", input: "USD", expected: FiatUSD},
		{name: "Lower case", input: "eur", expected: FiatEUR},
		{name: "Padded", input: "  jpy ", expected: FiatJPY},
		{name: "Unsupported", input: "CHF", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFiatCode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFiatCodes(t *testing.T) {
	codes := FiatCodes()
	assert.Equal(t, []FiatCode{FiatUSD, FiatEUR, FiatINR, FiatGBP, FiatJPY}, codes)

	codes[0] = "XXX"
	assert.Equal(t, FiatUSD, FiatCodes()[0], "returned slice must be a copy")
}

func TestFiatCode_Lower(t *testing.T) {
	assert.Equal(t, "usd", FiatUSD.Lower())
	assert.Equal(t, "gbp", FiatGBP.Lower())
}
