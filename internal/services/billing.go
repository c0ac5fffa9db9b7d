package services

// FeeSchedule holds the per-unit rates used to price an invoice. Amounts are
// whole VND.
type FeeSchedule struct {
	ElectricityPrice    int64 // per kWh
	WaterPerResident    int64
	InternetPerResident int64
	ServicePerResident  int64
}

// Breakdown is the priced result of one billing period.
type Breakdown struct {
	ElectricityUsage  int64
	ElectricityCharge int64
	WaterFee          int64
	InternetFee       int64
	ServiceFee        int64
	Total             int64
}

// ComputeInvoiceTotal prices a billing period. A meter reading lower than the
// previous one yields zero usage, never a credit.
func ComputeInvoiceTotal(fees FeeSchedule, residentCount int, roomPrice, electricityOld, electricityNew int64) Breakdown {
	usage := electricityNew - electricityOld
	if usage < 0 {
		usage = 0
	}
	residents := int64(residentCount)

	b := Breakdown{
		ElectricityUsage:  usage,
		ElectricityCharge: usage * fees.ElectricityPrice,
		WaterFee:          residents * fees.WaterPerResident,
		InternetFee:       residents * fees.InternetPerResident,
		ServiceFee:        residents * fees.ServicePerResident,
	}
	b.Total = roomPrice + b.ElectricityCharge + b.WaterFee + b.InternetFee + b.ServiceFee
	return b
}
