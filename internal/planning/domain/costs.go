package planning

import "math"

// InflateCost projects a present-day cost forward with compounding general
// inflation.
func InflateCost(cost float64, inflation float64, years int) (float64, error) {
	if cost < 0 {
		return 0, ErrNegativeCost
	}
	if years < 0 {
		return 0, ErrNegativeYears
	}
	return cost * math.Pow(1+inflation, float64(years)), nil
}

// DeflateCost estimates what a renovation priced at today's level cost some
// years ago, using the construction cost index rather than general inflation.
func DeflateCost(cost float64, constructionIndex float64, yearsAgo int) (float64, error) {
	if cost < 0 {
		return 0, ErrNegativeCost
	}
	if yearsAgo < 0 {
		return 0, ErrNegativeYears
	}
	if constructionIndex <= 0 {
		return 0, ErrInvalidIndex
	}
	return cost / math.Pow(constructionIndex, float64(yearsAgo)), nil
}

// PriceEntry gives planning defaults for one component category.
type PriceEntry struct {
	ExpectedLifeYears int     `yaml:"expected_life_years"`
	UnitPricePerArea  float64 `yaml:"unit_price_per_area"`
}

// Pricebook maps a component category to its planning defaults. Categories
// are open; unknown ones fall back to DefaultUnitPrice.
type Pricebook map[string]PriceEntry

// DefaultUnitPrice is the fallback unit price for unknown categories.
const DefaultUnitPrice = 150.0

// DefaultPricebook returns the built-in category table.
func DefaultPricebook() Pricebook {
	return Pricebook{
		"roof":       {ExpectedLifeYears: 40, UnitPricePerArea: 180},
		"facade":     {ExpectedLifeYears: 50, UnitPricePerArea: 250},
		"windows":    {ExpectedLifeYears: 40, UnitPricePerArea: 120},
		"plumbing":   {ExpectedLifeYears: 50, UnitPricePerArea: 750},
		"sewer":      {ExpectedLifeYears: 50, UnitPricePerArea: 400},
		"electrical": {ExpectedLifeYears: 40, UnitPricePerArea: 90},
		"elevator":   {ExpectedLifeYears: 25, UnitPricePerArea: 60},
		"heating":    {ExpectedLifeYears: 25, UnitPricePerArea: 110},
		"balconies":  {ExpectedLifeYears: 40, UnitPricePerArea: 100},
		"yard":       {ExpectedLifeYears: 30, UnitPricePerArea: 45},
	}
}

// Lookup returns the entry for a category, falling back to the default unit
// price with a zero life estimate when the category is unknown.
func (p Pricebook) Lookup(category string) PriceEntry {
	if entry, ok := p[category]; ok {
		return entry
	}
	return PriceEntry{UnitPricePerArea: DefaultUnitPrice}
}

// Merge overlays non-zero fields of overrides onto the book.
func (p Pricebook) Merge(overrides Pricebook) Pricebook {
	merged := make(Pricebook, len(p)+len(overrides))
	for category, entry := range p {
		merged[category] = entry
	}
	for category, override := range overrides {
		entry := merged[category]
		if override.ExpectedLifeYears > 0 {
			entry.ExpectedLifeYears = override.ExpectedLifeYears
		}
		if override.UnitPricePerArea > 0 {
			entry.UnitPricePerArea = override.UnitPricePerArea
		}
		merged[category] = entry
	}
	return merged
}
