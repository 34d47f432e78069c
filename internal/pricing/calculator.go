// Package pricing estimates what a labour job will cost.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hoursPerDay = decimal.NewFromInt(24)
	hundred     = decimal.NewFromInt(100)
)

// Input is the calculator form. Every field is optional; blanks and junk count as zero.
type Input struct {
	WorkDays      string `form:"workDays" json:"workDays"`
	WorkHours     string `form:"workHours" json:"workHours"`
	BaseWage      string `form:"baseWage" json:"baseWage"`
	Labourers     string `form:"noOfLabourers" json:"noOfLabourers"`
	OvertimeHours string `form:"overtimeHours" json:"overtimeHours"`
	OvertimeRate  string `form:"overtimeRate" json:"overtimeRate"` // percent of base wage
	MaterialCost  string `form:"materialCost" json:"materialCost"`
	Tax           string `form:"tax" json:"tax"` // percent
	Bonus         string `form:"bonus" json:"bonus"`
	Discount      string `form:"discount" json:"discount"` // percent
	Travel        string `form:"travel" json:"travel"`
	OtherCharges  string `form:"otherCharges" json:"otherCharges"`
}

type Estimate struct {
	HoursFromDays   decimal.Decimal `json:"hoursFromDays"`
	AdditionalHours decimal.Decimal `json:"additionalHours"`
	TotalHours      decimal.Decimal `json:"totalHours"`
	LabourCost      decimal.Decimal `json:"labourCost"`
	OvertimePay     decimal.Decimal `json:"overtimePay"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	FinalPayable    decimal.Decimal `json:"finalPayable"`
}

// Calculate works in exact decimals and rounds only the reported figures:
// hours to one place, money to two.
func Calculate(in Input) Estimate {
	days := parse(in.WorkDays)
	hours := parse(in.WorkHours)
	wage := parse(in.BaseWage)
	labourers := parse(in.Labourers)

	hoursFromDays := days.Mul(hoursPerDay)
	totalHours := hoursFromDays.Add(hours)
	labourCost := totalHours.Mul(wage).Mul(labourers)
	overtimePay := wage.Mul(parse(in.OvertimeHours)).Mul(percent(in.OvertimeRate)).Mul(labourers)
	subtotal := labourCost.Add(overtimePay).Add(parse(in.MaterialCost))
	tax := subtotal.Mul(percent(in.Tax))
	discount := subtotal.Mul(percent(in.Discount))
	final := subtotal.Add(tax).
		Add(parse(in.Bonus)).
		Add(parse(in.Travel)).
		Add(parse(in.OtherCharges)).
		Sub(discount)

	return Estimate{
		HoursFromDays:   hoursFromDays.Round(1),
		AdditionalHours: hours.Round(1),
		TotalHours:      totalHours.Round(1),
		LabourCost:      labourCost.Round(2),
		OvertimePay:     overtimePay.Round(2),
		Subtotal:        subtotal.Round(2),
		TaxAmount:       tax.Round(2),
		DiscountAmount:  discount.Round(2),
		FinalPayable:    final.Round(2),
	}
}

func parse(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func percent(raw string) decimal.Decimal {
	return parse(raw).Div(hundred)
}
