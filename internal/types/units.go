package types

import "strings"

// QuantityUnit is the unit of measure an offer's unit size is expressed in
type QuantityUnit string

const (
	UnitPiece       QuantityUnit = "piece"
	UnitMicrogram   QuantityUnit = "microgram"
	UnitMilligram   QuantityUnit = "milligram"
	UnitGram        QuantityUnit = "gram"
	UnitKilogram    QuantityUnit = "kilogram"
	UnitTonne       QuantityUnit = "tonne"
	UnitPound       QuantityUnit = "pound"
	UnitOunce       QuantityUnit = "ounce"
	UnitMillilitre  QuantityUnit = "millilitre"
	UnitCentilitre  QuantityUnit = "centilitre"
	UnitDecilitre   QuantityUnit = "decilitre"
	UnitLitre       QuantityUnit = "litre"
	UnitFluidOunce  QuantityUnit = "fluid_ounce"
	UnitGallon      QuantityUnit = "gallon"
	UnitMillimetre  QuantityUnit = "millimetre"
	UnitCentimetre  QuantityUnit = "centimetre"
	UnitMetre       QuantityUnit = "metre"
	UnitSquareMetre QuantityUnit = "square_metre"
	UnitCubicMetre  QuantityUnit = "cubic_metre"
)

// unitSymbols maps upstream symbols to canonical units.
// Keys are lowercase with whitespace removed.
var unitSymbols = map[string]QuantityUnit{
	"piece":  UnitPiece,
	"pieces": UnitPiece,
	"pcs":    UnitPiece,
	"pc":     UnitPiece,
	"stk":    UnitPiece,
	"kom":    UnitPiece,
	"pack":   UnitPiece,
	"µg":     UnitMicrogram,
	"ug":     UnitMicrogram,
	"mg":     UnitMilligram,
	"g":      UnitGram,
	"gr":     UnitGram,
	"kg":     UnitKilogram,
	"t":      UnitTonne,
	"lb":     UnitPound,
	"lbs":    UnitPound,
	"oz":     UnitOunce,
	"ml":     UnitMillilitre,
	"cl":     UnitCentilitre,
	"dl":     UnitDecilitre,
	"l":      UnitLitre,
	"ltr":    UnitLitre,
	"lit":    UnitLitre,
	"floz":   UnitFluidOunce,
	"fl.oz":  UnitFluidOunce,
	"gal":    UnitGallon,
	"mm":     UnitMillimetre,
	"cm":     UnitCentimetre,
	"m":      UnitMetre,
	"m2":     UnitSquareMetre,
	"m²":     UnitSquareMetre,
	"m3":     UnitCubicMetre,
	"m³":     UnitCubicMetre,
}

// ParseQuantityUnit resolves an upstream unit symbol or canonical name.
// ok is false for empty or unknown symbols.
func ParseQuantityUnit(symbol string) (QuantityUnit, bool) {
	key := strings.ToLower(strings.Join(strings.Fields(symbol), ""))
	if key == "" {
		return UnitPiece, false
	}
	if u, ok := unitSymbols[key]; ok {
		return u, true
	}
	for _, u := range unitSymbols {
		if string(u) == key {
			return u, true
		}
	}
	return UnitPiece, false
}
