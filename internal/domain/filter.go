package domain

import "strings"

// Category is the closed set of catalog categories a filter can select
type Category int

const (
	CategoryUnknown Category = iota // unrecognized input, matches nothing
	CategoryAll
	CategoryCasual
	CategoryFormal
	CategoryStreetwear
	CategoryAthletic
	CategoryTraditional
	CategoryParty
)

var categoryNames = map[Category]string{
	CategoryAll:         "all",
	CategoryCasual:      "casual",
	CategoryFormal:      "formal",
	CategoryStreetwear:  "streetwear",
	CategoryAthletic:    "athletic",
	CategoryTraditional: "traditional",
	CategoryParty:       "party",
}

// Categories lists every concrete category in display order
var Categories = []Category{
	CategoryCasual,
	CategoryFormal,
	CategoryStreetwear,
	CategoryAthletic,
	CategoryParty,
	CategoryTraditional,
}

// ParseCategory maps a filter value to a Category. Empty input means "all".
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll
	}
	for c, name := range categoryNames {
		if name == s {
			return c
		}
	}
	return CategoryUnknown
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// Matches reports whether a product category satisfies this filter value
func (c Category) Matches(productCategory string) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryUnknown:
		return false
	default:
		return strings.EqualFold(strings.TrimSpace(productCategory), c.String())
	}
}

// PriceBucket is the closed set of price-range filter values
type PriceBucket int

const (
	PriceBucketUnknown PriceBucket = iota // unrecognized input, contains no price
	PriceBucketAll
	PriceBucketUnder1000
	PriceBucket1000To2500
	PriceBucket2500To5000
	PriceBucket5000To10000
	PriceBucket10000Plus
)

var priceBucketNames = map[PriceBucket]string{
	PriceBucketAll:         "all",
	PriceBucketUnder1000:   "0-1000",
	PriceBucket1000To2500:  "1000-2500",
	PriceBucket2500To5000:  "2500-5000",
	PriceBucket5000To10000: "5000-10000",
	PriceBucket10000Plus:   "10000+",
}

// ParsePriceBucket maps a bucket identifier to a PriceBucket. Empty input means "all".
func ParsePriceBucket(s string) PriceBucket {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceBucketAll
	}
	for b, name := range priceBucketNames {
		if name == s {
			return b
		}
	}
	return PriceBucketUnknown
}

func (b PriceBucket) String() string {
	if name, ok := priceBucketNames[b]; ok {
		return name
	}
	return "unknown"
}

// Bounds returns the half-open interval [lower, upper) of the bucket.
// hasUpper is false for the open-ended top bucket. ok is false for all/unknown.
func (b PriceBucket) Bounds() (lower, upper float64, hasUpper, ok bool) {
	switch b {
	case PriceBucketUnder1000:
		return 0, 1000, true, true
	case PriceBucket1000To2500:
		return 1000, 2500, true, true
	case PriceBucket2500To5000:
		return 2500, 5000, true, true
	case PriceBucket5000To10000:
		return 5000, 10000, true, true
	case PriceBucket10000Plus:
		return 10000, 0, false, true
	default:
		return 0, 0, false, false
	}
}

// Contains reports whether the price falls inside the bucket
func (b PriceBucket) Contains(p Price) bool {
	if b == PriceBucketAll {
		return true
	}
	if !p.Valid {
		return false
	}
	lower, upper, hasUpper, ok := b.Bounds()
	if !ok {
		return false
	}
	if p.Amount < lower {
		return false
	}
	return !hasUpper || p.Amount < upper
}

// SourceAll and SourceBoth are the sentinel source values that bypass the source predicate
const (
	SourceAll  = "all"
	SourceBoth = "both"
)

// FilterCriteria is the set of active structural filters for one ranking call
type FilterCriteria struct {
	Category   Category
	PriceRange PriceBucket
	Source     string
}

// AllFilters returns criteria that let every product through
func AllFilters() FilterCriteria {
	return FilterCriteria{Category: CategoryAll, PriceRange: PriceBucketAll, Source: SourceAll}
}

// ParseFilterCriteria builds criteria from loosely-typed request values
func ParseFilterCriteria(category, priceRange, source string) FilterCriteria {
	return FilterCriteria{
		Category:   ParseCategory(category),
		PriceRange: ParsePriceBucket(priceRange),
		Source:     strings.TrimSpace(source),
	}
}

// SourceMatches reports whether a product source satisfies the source filter
func (f FilterCriteria) SourceMatches(productSource string) bool {
	if isAnySource(f.Source) {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(productSource), f.Source)
}

// IsIdentity reports whether every predicate is skipped
func (f FilterCriteria) IsIdentity() bool {
	return f.Category == CategoryAll && f.PriceRange == PriceBucketAll && isAnySource(f.Source)
}

// SourceParam returns the source value to send upstream
func (f FilterCriteria) SourceParam() string {
	if isAnySource(f.Source) {
		return SourceBoth
	}
	return f.Source
}

func isAnySource(s string) bool {
	return s == "" || strings.EqualFold(s, SourceAll) || strings.EqualFold(s, SourceBoth)
}

// FilterWire is the JSON shape of FilterCriteria exchanged with clients and the remote recommender
type FilterWire struct {
	Category   string `json:"category"`
	PriceRange string `json:"priceRange"`
	Source     string `json:"source"`
}

// ToWire converts criteria to their wire representation
func (f FilterCriteria) ToWire() FilterWire {
	source := f.Source
	if source == "" {
		source = SourceAll
	}
	return FilterWire{
		Category:   f.Category.String(),
		PriceRange: f.PriceRange.String(),
		Source:     source,
	}
}

// Criteria converts the wire representation back to typed criteria
func (w FilterWire) Criteria() FilterCriteria {
	return ParseFilterCriteria(w.Category, w.PriceRange, w.Source)
}
