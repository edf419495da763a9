package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"", CategoryAll},
		{"all", CategoryAll},
		{" Casual ", CategoryCasual},
		{"FORMAL", CategoryFormal},
		{"streetwear", CategoryStreetwear},
		{"athletic", CategoryAthletic},
		{"traditional", CategoryTraditional},
		{"party", CategoryParty},
		{"swimwear", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestCategory_Matches(t *testing.T) {
	assert.True(t, CategoryAll.Matches("anything"))
	assert.True(t, CategoryAll.Matches(""))
	assert.True(t, CategoryCasual.Matches("Casual"))
	assert.True(t, CategoryCasual.Matches(" casual "))
	assert.False(t, CategoryCasual.Matches("Formal"))
	assert.False(t, CategoryUnknown.Matches("Casual"))
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestParsePriceBucket(t *testing.T) {
	assert.Equal(t, PriceBucketAll, ParsePriceBucket(""))
	assert.Equal(t, PriceBucketAll, ParsePriceBucket("all"))
	assert.Equal(t, PriceBucketUnder1000, ParsePriceBucket("0-1000"))
	assert.Equal(t, PriceBucket1000To2500, ParsePriceBucket(" 1000-2500 "))
	assert.Equal(t, PriceBucket2500To5000, ParsePriceBucket("2500-5000"))
	assert.Equal(t, PriceBucket5000To10000, ParsePriceBucket("5000-10000"))
	assert.Equal(t, PriceBucket10000Plus, ParsePriceBucket("10000+"))
	assert.Equal(t, PriceBucketUnknown, ParsePriceBucket("cheap"))
}

func TestPriceBucket_Contains(t *testing.T) {
	tests := []struct {
		bucket PriceBucket
		price  Price
		want   bool
	}{
		{PriceBucketUnder1000, NewPrice(0), true},
		{PriceBucketUnder1000, NewPrice(999.99), true},
		{PriceBucketUnder1000, NewPrice(1000), false},
		{PriceBucket1000To2500, NewPrice(1000), true},
		{PriceBucket1000To2500, NewPrice(2500), false},
		{PriceBucket2500To5000, NewPrice(2500), true},
		{PriceBucket5000To10000, NewPrice(9999), true},
		{PriceBucket5000To10000, NewPrice(10000), false},
		{PriceBucket10000Plus, NewPrice(10000), true},
		{PriceBucket10000Plus, NewPrice(250000), true},
		{PriceBucketAll, Price{}, true},
		{PriceBucketUnder1000, Price{}, false},
		{PriceBucketUnknown, NewPrice(500), false},
	}

	for _, tt := range tests {
		t.Run(tt.bucket.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.bucket.Contains(tt.price), "%s contains %+v", tt.bucket, tt.price)
		})
	}
}

func TestPriceBucket_BoundaryBelongsToOneBucket(t *testing.T) {
	buckets := []PriceBucket{
		PriceBucketUnder1000,
		PriceBucket1000To2500,
		PriceBucket2500To5000,
		PriceBucket5000To10000,
		PriceBucket10000Plus,
	}

	for _, amount := range []float64{0, 500, 1000, 2500, 5000, 10000, 123456} {
		matches := 0
		for _, b := range buckets {
			if b.Contains(NewPrice(amount)) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "price %v matched %d buckets", amount, matches)
	}
}

func TestFilterCriteria_Source(t *testing.T) {
	for _, source := range []string{"", "all", "ALL", "both"} {
		criteria := ParseFilterCriteria("", "", source)
		assert.True(t, criteria.SourceMatches("Flipkart"), "source %q", source)
		assert.True(t, criteria.IsIdentity(), "source %q", source)
		assert.Equal(t, SourceBoth, criteria.SourceParam(), "source %q", source)
	}

	amazon := ParseFilterCriteria("", "", " amazon ")
	assert.True(t, amazon.SourceMatches("Amazon"))
	assert.False(t, amazon.SourceMatches("Flipkart"))
	assert.False(t, amazon.IsIdentity())
	assert.Equal(t, "amazon", amazon.SourceParam())
}

func TestFilterCriteria_WireRoundTrip(t *testing.T) {
	criteria := ParseFilterCriteria("party", "2500-5000", "Flipkart")

	wire := criteria.ToWire()

	assert.Equal(t, FilterWire{Category: "party", PriceRange: "2500-5000", Source: "Flipkart"}, wire)
	assert.Equal(t, criteria, wire.Criteria())
	assert.Equal(t, FilterWire{Category: "all", PriceRange: "all", Source: "all"}, FilterCriteria{Category: CategoryAll, PriceRange: PriceBucketAll}.ToWire())
}
