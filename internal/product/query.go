package product

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage   int64 = 1
	DefaultLimit  int64 = 9
	MaxLimit      int64 = 100
	FeaturedLimit int64 = 6
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SearchParams is the normalized form of the /all-products query string.
type SearchParams struct {
	Title    string
	Category string
	Brand    string
	Page     int64
	Limit    int64
	Sort     SortOrder
}

// ParseSearchParams never fails: malformed or non-positive page/limit values
// fall back to the defaults and any sort other than "asc" means descending.
func ParseSearchParams(q url.Values) SearchParams {
	p := SearchParams{
		Title:    strings.TrimSpace(q.Get("title")),
		Category: strings.TrimSpace(q.Get("category")),
		Brand:    q.Get("brand"),
		Page:     parsePositive(q.Get("page"), DefaultPage),
		Limit:    parsePositive(q.Get("limit"), DefaultLimit),
		Sort:     SortDesc,
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if q.Get("sort") == string(SortAsc) {
		p.Sort = SortAsc
	}
	return p
}

func parsePositive(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Filter ANDs the supplied criteria. Absent criteria are omitted entirely.
func (p SearchParams) Filter() bson.M {
	filter := bson.M{}
	if p.Title != "" {
		filter["title"] = containsIgnoreCase(p.Title)
	}
	if p.Category != "" {
		filter["category"] = containsIgnoreCase(p.Category)
	}
	if p.Brand != "" {
		filter["brand"] = p.Brand
	}
	return filter
}

func containsIgnoreCase(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func (p SearchParams) Skip() int64 {
	return (p.Page - 1) * p.Limit
}

func (p SearchParams) SortDirection() int {
	if p.Sort == SortAsc {
		return 1
	}
	return -1
}

// FindOptions sorts by price (ties broken by _id for stable paging) and
// applies skip/limit for the requested page.
func (p SearchParams) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{
			{Key: "price", Value: p.SortDirection()},
			{Key: "_id", Value: 1},
		}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit)
}

// Facets returns the distinct non-empty brands and categories of the given
// page, in first-seen order. They describe this page only.
func Facets(products []Product) (brands, categories []string) {
	brands = []string{}
	categories = []string{}
	seenBrand := map[string]struct{}{}
	seenCategory := map[string]struct{}{}

	for _, p := range products {
		if _, ok := seenBrand[p.Brand]; p.Brand != "" && !ok {
			seenBrand[p.Brand] = struct{}{}
			brands = append(brands, p.Brand)
		}
		if _, ok := seenCategory[p.Category]; p.Category != "" && !ok {
			seenCategory[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	return brands, categories
}
