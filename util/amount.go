// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// FractionsPerGAS is the number of fractional units in one GAS. GAS carries
// eight decimals on chain; fees and balances travel as integer counts of
// this smallest unit.
const FractionsPerGAS = 1e8

// AmountUnit describes a method of converting an Amount to something other
// than the base unit of GAS. The value of the AmountUnit is the exponent
// component of the decadic multiple to convert from an amount in GAS to an
// amount counted in units.
type AmountUnit int

// These constants define the units available for formatting amounts.
const (
	AmountMegaGAS  AmountUnit = 6
	AmountKiloGAS  AmountUnit = 3
	AmountGAS      AmountUnit = 0
	AmountMilliGAS AmountUnit = -3
	AmountMicroGAS AmountUnit = -6
	AmountFraction AmountUnit = -8
)

// String returns the unit as a string. For recognized units, the SI prefix is
// used, or "Fraction" for the base unit. For all unrecognized units, "1eN GAS"
// is returned, where N is the AmountUnit.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaGAS:
		return "MGAS"
	case AmountKiloGAS:
		return "kGAS"
	case AmountGAS:
		return "GAS"
	case AmountMilliGAS:
		return "mGAS"
	case AmountMicroGAS:
		return "μGAS"
	case AmountFraction:
		return "Fraction"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " GAS"
	}
}

// Amount represents the base GAS monetary unit (colloquially referred to as a
// "fraction"). A single Amount is equal to 1e-8 of a GAS.
type Amount int64

// round converts a floating point number, which may or may not be
// representable as an integer, to the Amount integer type by rounding to the
// nearest integer. This is performed by adding or subtracting 0.5 depending
// on the sign, and relying on integer truncation to round the value to the
// nearest Amount.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing an
// amount in GAS. NewAmount errors if f is NaN or +-Infinity, but does not
// check that the amount is within the total amount of GAS producible as f may
// not refer to an amount at a single moment in time.
func NewAmount(f float64) (Amount, error) {
	// The amount is only considered invalid if it cannot be represented as
	// an integer type. This may happen if f is NaN or +-Infinity.
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, errors.New("invalid GAS amount")
	}

	return round(f * FractionsPerGAS), nil
}

// AmountFromString creates an Amount from a decimal string representing an
// amount of GAS, as typed by users on a command line.
func AmountFromString(s string) (Amount, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid GAS amount %q", s)
	}
	return NewAmount(f)
}

// ToUnit converts a monetary amount counted in GAS base units to a floating
// point value representing an amount in the given unit.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u+8))
}

// ToGAS is the equivalent of calling ToUnit with AmountGAS.
func (a Amount) ToGAS() float64 {
	return a.ToUnit(AmountGAS)
}

// Format formats a monetary amount counted in GAS base units as a string for
// a given unit. The conversion will succeed for any unit, however, known
// units will be formatted with an appended label describing the units with
// SI notation, or "Fraction" for the base unit.
func (a Amount) Format(u AmountUnit) string {
	units := " " + u.String()
	return strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+8), 64) + units
}

// String is the equivalent of calling Format with AmountGAS.
func (a Amount) String() string {
	return a.Format(AmountGAS)
}

// MulF64 multiplies an Amount by a floating point value. While this is not
// an operation that must typically be done by a full node or wallet, it is
// useful for services that build on top of the chain (fee bumping, for
// example).
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
