package payqr_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bartab/internal/payqr"
)

func TestPayload_String(t *testing.T) {
	type testCase struct {
		name    string
		payload payqr.Payload
		want    string
	}

	tests := []testCase{
		{
			name: "FullPayload",
			payload: payqr.Payload{
				Account:        "CZ6508000000192000145399",
				Amount:         decimal.RequireFromString("3.5"),
				Currency:       "eur",
				VariableSymbol: "42",
				Message:        "bar tab",
			},
			want: "SPD*1.0*ACC:CZ6508000000192000145399*AM:3.50*CC:EUR*X-VS:42*MSG:bar tab",
		},
		{
			name: "OptionalFieldsOmitted",
			payload: payqr.Payload{
				Account:  "CZ6508000000192000145399",
				Amount:   decimal.RequireFromString("12"),
				Currency: "EUR",
			},
			want: "SPD*1.0*ACC:CZ6508000000192000145399*AM:12.00*CC:EUR",
		},
		{
			name: "SeparatorStrippedFromFreeText",
			payload: payqr.Payload{
				Account:  "CZ6508000000192000145399",
				Amount:   decimal.RequireFromString("1"),
				Currency: "EUR",
				Message:  "beer*snacks",
			},
			want: "SPD*1.0*ACC:CZ6508000000192000145399*AM:1.00*CC:EUR*MSG:beer snacks",
		},
		{
			name: "AmountRoundedToCents",
			payload: payqr.Payload{
				Account:  "CZ6508000000192000145399",
				Amount:   decimal.RequireFromString("2.505"),
				Currency: "EUR",
			},
			want: "SPD*1.0*ACC:CZ6508000000192000145399*AM:2.51*CC:EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payload.String())
		})
	}
}

func TestPNG(t *testing.T) {
	png, err := payqr.PNG(payqr.Payload{
		Account:  "CZ6508000000192000145399",
		Amount:   decimal.RequireFromString("3.5"),
		Currency: "EUR",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
