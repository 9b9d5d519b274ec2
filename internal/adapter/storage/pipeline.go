package storage

import (
	"regexp"

	"github.com/niksmo/catalog/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// searchFields are matched by the free text search of the listing.
var searchFields = []string{
	"title",
	"brand.name",
	"category.name",
	"color.name",
	"color.code",
	"productType.name",
	"description",
	"additionalInformation",
	"tags",
	"sku",
	"unit",
}

var sortFields = map[domain.SortKey]string{
	domain.SortKeyBrand:     "brand.name",
	domain.SortKeyPrice:     "price",
	domain.SortKeyCreatedAt: "createdAt",
	domain.SortKeyTitle:     "title",
	domain.SortKeyID:        "_id",
}

// exactRegex matches the whole field ignoring case.
func exactRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

// containsRegex matches a substring of the field ignoring case.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func productsMatch(q domain.ProductQuery) bson.D {
	match := bson.D{}

	exact := []struct{ field, value string }{
		{"brand.name", q.Brand},
		{"category.name", q.Category},
		{"productType.name", q.ProductType},
		{"color.name", q.Color},
	}
	for _, f := range exact {
		if f.value != "" {
			match = append(match, bson.E{Key: f.field, Value: exactRegex(f.value)})
		}
	}

	if q.Status != "" {
		match = append(match, bson.E{Key: "status", Value: string(q.Status)})
	}

	if q.Search != "" {
		re := containsRegex(q.Search)
		or := make(bson.A, 0, len(searchFields))
		for _, f := range searchFields {
			or = append(or, bson.D{{Key: f, Value: re}})
		}
		match = append(match, bson.E{Key: "$or", Value: or})
	}

	return match
}

func productsSort(q domain.ProductQuery) bson.D {
	order := q.SortOrder()
	sort := make(bson.D, 0, len(order))
	for _, f := range order {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: sortFields[f.Key], Value: dir})
	}
	return sort
}

func reviewsLookup() bson.D {
	return stage("$lookup", bson.D{
		{Key: "from", Value: reviewsCollection},
		{Key: "localField", Value: "reviews"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "reviewDocs"},
	})
}

// productsPipeline builds the listing aggregation. q must be normalized.
func productsPipeline(q domain.ProductQuery) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", productsMatch(q)),
		stage("$sort", productsSort(q)),
		stage("$facet", bson.D{
			{Key: "products", Value: bson.A{
				stage("$skip", int64(q.Skip)),
				stage("$limit", int64(q.Take)),
				reviewsLookup(),
			}},
			{Key: "totalCount", Value: bson.A{
				stage("$count", "count"),
			}},
		}),
	}
}

func topRatedPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.D{
			{Key: "status", Value: string(domain.StatusInStock)},
			{Key: "reviews.0", Value: bson.D{{Key: "$exists", Value: true}}},
		}),
		reviewsLookup(),
		stage("$addFields", bson.D{
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$reviewDocs.rating"}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$size", Value: "$reviewDocs"}}},
		}),
		stage("$sort", bson.D{
			{Key: "avgRating", Value: -1},
			{Key: "reviewCount", Value: -1},
			{Key: "_id", Value: 1},
		}),
		stage("$limit", int64(limit)),
	}
}

func categoryMembersPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.D{{Key: "category.id", Value: bson.D{{Key: "$ne", Value: nil}}}}),
		stage("$group", bson.D{
			{Key: "_id", Value: "$category.id"},
			{Key: "products", Value: bson.D{{Key: "$addToSet", Value: "$_id"}}},
		}),
	}
}

var typeOrderSort = map[domain.TypeOrder]bson.D{
	domain.TypeOrderNewest:     {{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}},
	domain.TypeOrderTopSellers: {{Key: "sellCount", Value: -1}, {Key: "_id", Value: 1}},
}

// typeListingPipeline selects in-stock products of l.ProductType with
// their reviews attached.
func typeListingPipeline(l domain.TypeListing) mongo.Pipeline {
	match := bson.D{
		{Key: "productType.name", Value: l.ProductType},
		{Key: "status", Value: string(domain.StatusInStock)},
	}
	if l.OfferEndsAfter != nil {
		match = append(match, bson.E{
			Key: "offerDate.endDate", Value: bson.D{{Key: "$gt", Value: *l.OfferEndsAfter}},
		})
	}

	pipeline := mongo.Pipeline{stage("$match", match)}
	if sort, ok := typeOrderSort[l.Order]; ok {
		pipeline = append(pipeline, stage("$sort", sort))
	}
	if l.Limit > 0 {
		pipeline = append(pipeline, stage("$limit", int64(l.Limit)))
	}
	return append(pipeline, reviewsLookup())
}

func reviewedPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.D{
			{Key: "status", Value: string(domain.StatusInStock)},
			{Key: "reviews.0", Value: bson.D{{Key: "$exists", Value: true}}},
		}),
		reviewsLookup(),
	}
}

func categoriesMatch(f domain.CategoryFilter) bson.D {
	match := bson.D{}
	if f.ProductType != "" {
		match = append(match, bson.E{Key: "productType", Value: exactRegex(f.ProductType)})
	}
	if f.Status != "" {
		match = append(match, bson.E{Key: "status", Value: string(f.Status)})
	}
	return match
}

// attachModels builds one $addToSet update per owner id of refs.
func attachModels(refs map[string][]string) ([]mongo.WriteModel, error) {
	models := make([]mongo.WriteModel, 0, len(refs))
	for ownerID, productIDs := range refs {
		if len(productIDs) == 0 {
			continue
		}
		owner, err := objectID(ownerID)
		if err != nil {
			return nil, err
		}
		products, err := objectIDs(productIDs)
		if err != nil {
			return nil, err
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: owner}}).
			SetUpdate(stage("$addToSet", bson.D{{Key: "products", Value: bson.D{
				{Key: "$each", Value: products},
			}}})),
		)
	}
	return models, nil
}
