package product

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseSearchParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  SearchParams
	}{
		{
			name:  "Defaults",
			query: "",
			want:  SearchParams{Page: 1, Limit: 9, Sort: SortDesc},
		},
		{
			name:  "All fields",
			query: "title=phone&category=mobile&brand=Acme&page=2&limit=5&sort=asc",
			want: SearchParams{
				Title: "phone", Category: "mobile", Brand: "Acme",
				Page: 2, Limit: 5, Sort: SortAsc,
			},
		},
		{
			name:  "Brand kept verbatim",
			query: "brand=%20Acme&category=%20mobile%20",
			want:  SearchParams{Category: "mobile", Brand: " Acme", Page: 1, Limit: 9, Sort: SortDesc},
		},
		{
			name:  "Malformed numbers fall back",
			query: "page=abc&limit=NaN",
			want:  SearchParams{Page: 1, Limit: 9, Sort: SortDesc},
		},
		{
			name:  "Non-positive numbers fall back",
			query: "page=0&limit=-4",
			want:  SearchParams{Page: 1, Limit: 9, Sort: SortDesc},
		},
		{
			name:  "Limit capped",
			query: "limit=5000",
			want:  SearchParams{Page: 1, Limit: MaxLimit, Sort: SortDesc},
		},
		{
			name:  "Unknown sort is descending",
			query: "sort=ASC",
			want:  SearchParams{Page: 1, Limit: 9, Sort: SortDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseSearchParams(q))
		})
	}
}

func TestSearchParams_Filter(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, bson.M{}, SearchParams{}.Filter())
	})

	t.Run("Only present criteria apply", func(t *testing.T) {
		f := SearchParams{Brand: "Acme"}.Filter()
		assert.Equal(t, bson.M{"brand": "Acme"}, f)
	})

	t.Run("Substring matches are case-insensitive and escaped", func(t *testing.T) {
		f := SearchParams{Title: "usb-c (2m)", Category: "Cables"}.Filter()

		assert.Equal(t, primitive.Regex{Pattern: `usb-c \(2m\)`, Options: "i"}, f["title"])
		assert.Equal(t, primitive.Regex{Pattern: "Cables", Options: "i"}, f["category"])
		_, hasBrand := f["brand"]
		assert.False(t, hasBrand)
	})
}

func TestSearchParams_FindOptions(t *testing.T) {
	t.Run("Page two of five", func(t *testing.T) {
		opts := SearchParams{Page: 2, Limit: 5, Sort: SortAsc}.FindOptions()

		assert.Equal(t, int64(5), *opts.Skip)
		assert.Equal(t, int64(5), *opts.Limit)
		assert.Equal(t, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
	})

	t.Run("Descending by default", func(t *testing.T) {
		opts := SearchParams{Page: 1, Limit: 9, Sort: SortDesc}.FindOptions()

		assert.Equal(t, int64(0), *opts.Skip)
		assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}, opts.Sort)
	})
}

func TestFacets(t *testing.T) {
	t.Run("Distinct in first-seen order", func(t *testing.T) {
		page := []Product{
			{Brand: "Acme", Category: "Phones"},
			{Brand: "Globex", Category: "Phones"},
			{Brand: "Acme", Category: "Tablets"},
			{Brand: "", Category: ""},
		}

		brands, categories := Facets(page)
		assert.Equal(t, []string{"Acme", "Globex"}, brands)
		assert.Equal(t, []string{"Phones", "Tablets"}, categories)
	})

	t.Run("Empty page", func(t *testing.T) {
		brands, categories := Facets(nil)
		assert.NotNil(t, brands)
		assert.NotNil(t, categories)
		assert.Empty(t, brands)
		assert.Empty(t, categories)
	})
}
