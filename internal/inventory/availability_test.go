package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAvailability(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		reserved  int
		threshold int
		want      Availability
	}{
		{
			name:  "all zero is low stock",
			stock: 0, reserved: 0, threshold: 5,
			want: Availability{AvailableQty: 0, IsLowStock: true},
		},
		{
			name:  "healthy stock",
			stock: 10, reserved: 3, threshold: 5,
			want: Availability{AvailableQty: 7, IsLowStock: false},
		},
		{
			name:  "exactly at threshold is low",
			stock: 10, reserved: 5, threshold: 5,
			want: Availability{AvailableQty: 5, IsLowStock: true},
		},
		{
			name:  "one above threshold is not low",
			stock: 11, reserved: 5, threshold: 5,
			want: Availability{AvailableQty: 6, IsLowStock: false},
		},
		{
			name:  "fully reserved",
			stock: 10, reserved: 10, threshold: 5,
			want: Availability{AvailableQty: 0, IsLowStock: true},
		},
		{
			name:  "oversold stays negative",
			stock: 4, reserved: 7, threshold: 5,
			want: Availability{AvailableQty: -3, IsLowStock: true},
		},
		{
			name:  "zero threshold",
			stock: 1, reserved: 0, threshold: 0,
			want: Availability{AvailableQty: 1, IsLowStock: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAvailability(tc.stock, tc.reserved, tc.threshold)
			assert.Equal(t, tc.want, got)
		})
	}
}
