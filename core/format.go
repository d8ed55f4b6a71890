package core

import (
	"strings"
)

// Format is the physical (or digital) format of a book.
//
// A format adjusts the late fee and the maximum loan period of the book it is attached to:
//
//	Hardcover: fee x1.5, +7 days
//	Paperback: fee x1.2, +3 days
//	Digital:   fee x1.0, +0 days
//
// The zero value Unformatted applies no adjustment.
// A format never touches the lifecycle state of a book.
type Format int

const (
	// Unformatted is a plain book without format adjustments.
	Unformatted Format = iota
	Hardcover
	Paperback
	Digital
)

type formatAdjustment struct {
	name          string
	feeMultiplier float64
	bonusLoanDays int
}

var formatAdjustments = map[Format]formatAdjustment{
	Unformatted: {name: "", feeMultiplier: 1.0, bonusLoanDays: 0},
	Hardcover:   {name: "Hardcover", feeMultiplier: 1.5, bonusLoanDays: 7},
	Paperback:   {name: "Paperback", feeMultiplier: 1.2, bonusLoanDays: 3},
	Digital:     {name: "Digital", feeMultiplier: 1.0, bonusLoanDays: 0},
}

// FeeMultiplier returns the factor applied to the base late fee.
func (f Format) FeeMultiplier() float64 {
	return f.adjustment().feeMultiplier
}

// BonusLoanDays returns the days added to the base maximum loan period.
func (f Format) BonusLoanDays() int {
	return f.adjustment().bonusLoanDays
}

// AdjustLateFee applies the format's fee multiplier.
func (f Format) AdjustLateFee(fee float64) float64 {
	return fee * f.FeeMultiplier()
}

// AdjustMaxLoanDays applies the format's bonus days.
func (f Format) AdjustMaxLoanDays(days int) int {
	return days + f.BonusLoanDays()
}

func (f Format) String() string {
	return f.adjustment().name
}

func (f Format) adjustment() formatAdjustment {
	if adjustment, ok := formatAdjustments[f]; ok {
		return adjustment
	}

	return formatAdjustments[Unformatted]
}

// ParseFormat accepts "hardcover", "paperback", "digital" in any case, an empty string yields Unformatted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Unformatted, nil
	case "hardcover":
		return Hardcover, nil
	case "paperback":
		return Paperback, nil
	case "digital":
		return Digital, nil
	default:
		return Unformatted, ValidationError("Invalid format %q. Use hardcover, paperback or digital", s)
	}
}
