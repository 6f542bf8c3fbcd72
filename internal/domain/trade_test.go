package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTrade_Validate(t *testing.T) {
	tests := []struct {
		name    string
		trade   Trade
		wantErr bool
	}{
		{
			name: "valid buy fill should pass",
			trade: Trade{
				ID:           uuid.New(),
				TokenID:      uuid.New(),
				UserID:       uuid.New(),
				Side:         TradeBuy,
				Quantity:     decimal.NewFromInt(10),
				PricePerUnit: decimal.NewFromInt(95),
				TotalValue:   decimal.NewFromInt(950),
			},
			wantErr: false,
		},
		{
			name: "fractional sell fill should pass",
			trade: Trade{
				Side:         TradeSell,
				Quantity:     decimal.RequireFromString("0.25"),
				PricePerUnit: decimal.RequireFromString("101.5"),
				TotalValue:   decimal.RequireFromString("25.375"),
			},
			wantErr: false,
		},
		{
			name: "zero-price fill should pass",
			trade: Trade{
				Side:         TradeBuy,
				Quantity:     decimal.NewFromInt(1),
				PricePerUnit: decimal.Zero,
				TotalValue:   decimal.Zero,
			},
			wantErr: false,
		},
		{
			name: "unknown side should fail",
			trade: Trade{
				Side:         "short",
				Quantity:     decimal.NewFromInt(1),
				PricePerUnit: decimal.NewFromInt(1),
				TotalValue:   decimal.NewFromInt(1),
			},
			wantErr: true,
		},
		{
			name: "zero quantity should fail",
			trade: Trade{
				Side:         TradeBuy,
				Quantity:     decimal.Zero,
				PricePerUnit: decimal.NewFromInt(1),
				TotalValue:   decimal.Zero,
			},
			wantErr: true,
		},
		{
			name: "negative quantity should fail",
			trade: Trade{
				Side:         TradeSell,
				Quantity:     decimal.NewFromInt(-3),
				PricePerUnit: decimal.NewFromInt(1),
				TotalValue:   decimal.NewFromInt(-3),
			},
			wantErr: true,
		},
		{
			name: "negative price should fail",
			trade: Trade{
				Side:         TradeBuy,
				Quantity:     decimal.NewFromInt(1),
				PricePerUnit: decimal.NewFromInt(-1),
				TotalValue:   decimal.NewFromInt(-1),
			},
			wantErr: true,
		},
		{
			name: "total not matching quantity * price should fail",
			trade: Trade{
				Side:         TradeBuy,
				Quantity:     decimal.NewFromInt(10),
				PricePerUnit: decimal.NewFromInt(95),
				TotalValue:   decimal.NewFromInt(949),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.trade.Validate()

			if tt.wantErr {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
