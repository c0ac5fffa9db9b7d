package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeInvoiceTotal(t *testing.T) {
	perResident := testFees.WaterPerResident + testFees.InternetPerResident + testFees.ServicePerResident

	tests := []struct {
		name          string
		residentCount int
		roomPrice     int64
		oldReading    int64
		newReading    int64
		wantCharge    int64
		wantTotal     int64
	}{
		{"empty room", 0, 3000000, 100, 100, 0, 3000000},
		{"two residents", 2, 3000000, 100, 250, 150 * 2500, 3000000 + 150*2500 + 2*perResident},
		{"meter went backwards", 3, 2500000, 500, 400, 0, 2500000 + 3*perResident},
		{"free room", 1, 0, 0, 10, 10 * 2500, 10*2500 + perResident},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeInvoiceTotal(testFees, tt.residentCount, tt.roomPrice, tt.oldReading, tt.newReading)
			assert.Equal(t, tt.wantCharge, b.ElectricityCharge)
			assert.Equal(t, tt.wantTotal, b.Total)
			assert.GreaterOrEqual(t, b.ElectricityUsage, int64(0))
		})
	}
}

func TestComputeInvoiceTotalMatchesFormula(t *testing.T) {
	for residents := 0; residents <= 6; residents++ {
		for _, usage := range []int64{0, 1, 87, 1200} {
			old := int64(4321)
			b := ComputeInvoiceTotal(testFees, residents, 1800000, old, old+usage)
			want := 1800000 + usage*testFees.ElectricityPrice +
				int64(residents)*(testFees.WaterPerResident+testFees.InternetPerResident+testFees.ServicePerResident)
			assert.Equal(t, want, b.Total, "residents=%d usage=%d", residents, usage)
		}
	}
}

func TestComputeInvoiceTotalIsDeterministic(t *testing.T) {
	a := ComputeInvoiceTotal(testFees, 2, 1000, 10, 20)
	b := ComputeInvoiceTotal(testFees, 2, 1000, 10, 20)
	assert.Equal(t, a, b)
}
