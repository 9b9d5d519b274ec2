package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ port.ProductsStorage = (*ProductsRepository)(nil)

type ProductsRepository struct {
	coll *mongo.Collection
}

func NewProductsRepository(db MongoDB) ProductsRepository {
	return ProductsRepository{db.Database().Collection(productsCollection)}
}

func (r ProductsRepository) InsertProduct(
	ctx context.Context, p domain.Product,
) (domain.Product, error) {
	const op = "ProductsRepository.InsertProduct"

	doc, err := newProductDoc(p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	now := time.Now().UTC()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// InsertProducts stores all products in one unordered insert.
func (r ProductsRepository) InsertProducts(
	ctx context.Context, ps []domain.Product,
) ([]domain.Product, error) {
	const op = "ProductsRepository.InsertProducts"

	if len(ps) == 0 {
		return []domain.Product{}, nil
	}

	now := time.Now().UTC()
	docs := make([]any, len(ps))
	created := make([]domain.Product, len(ps))
	for i, p := range ps {
		doc, err := newProductDoc(p)
		if err != nil {
			return nil, fmt.Errorf("%s: product %d: %w", op, i, err)
		}
		doc.ID = primitive.NewObjectID()
		doc.CreatedAt, doc.UpdatedAt = now, now
		docs[i] = doc
		created[i] = doc.toDomain()
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return created, nil
}

// ReadProduct returns the product with its reviews attached.
func (r ProductsRepository) ReadProduct(
	ctx context.Context, id string,
) (domain.Product, error) {
	const op = "ProductsRepository.ReadProduct"

	oid, err := objectID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	pipeline := mongo.Pipeline{
		stage("$match", bson.D{{Key: "_id", Value: oid}}),
		reviewsLookup(),
	}
	docs, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(docs) == 0 {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return docs[0].toDomain(), nil
}

func (r ProductsRepository) UpdateProduct(
	ctx context.Context, id string, patch domain.ProductPatch,
) (domain.Product, error) {
	const op = "ProductsRepository.UpdateProduct"

	oid, err := objectID(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	set, err := patchFields(patch)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	set = append(set, bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	var doc productDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		stage("$set", set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func patchFields(p domain.ProductPatch) (bson.D, error) {
	var set bson.D
	add := func(key string, v any) {
		set = append(set, bson.E{Key: key, Value: v})
	}

	refs := []struct {
		key string
		ref *domain.Ref
	}{
		{"brand", p.Brand},
		{"category", p.Category},
		{"productType", p.ProductType},
	}
	for _, f := range refs {
		if f.ref == nil {
			continue
		}
		doc, err := newRefDoc(*f.ref)
		if err != nil {
			return nil, err
		}
		add(f.key, doc)
	}

	strs := []struct {
		key string
		v   *string
	}{
		{"title", p.Title},
		{"slug", p.Slug},
		{"image", p.Image},
		{"unit", p.Unit},
		{"description", p.Description},
		{"additionalInformation", p.AdditionalInformation},
	}
	for _, f := range strs {
		if f.v != nil {
			add(f.key, *f.v)
		}
	}

	nums := []struct {
		key string
		v   *float64
	}{
		{"price", p.Price},
		{"discount", p.Discount},
		{"quantity", p.Quantity},
	}
	for _, f := range nums {
		if f.v != nil {
			add(f.key, *f.v)
		}
	}

	if p.Color != nil {
		add("color", colorDoc(*p.Color))
	}
	if p.AdditionalImages != nil {
		add("additionalImages", p.AdditionalImages)
	}
	if p.Tags != nil {
		add("tags", p.Tags)
	}
	if p.Status != nil {
		add("status", string(*p.Status))
	}
	if p.OfferDate != nil {
		add("offerDate", offerDateDoc(*p.OfferDate))
	}
	return set, nil
}

func (r ProductsRepository) DeleteProduct(ctx context.Context, id string) error {
	const op = "ProductsRepository.DeleteProduct"

	oid, err := objectID(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) ReadProductsBySKU(
	ctx context.Context, skus []string,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReadProductsBySKU"

	filter := bson.D{{Key: "sku", Value: bson.D{{Key: "$in", Value: skus}}}}
	docs, err := r.find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

func (r ProductsRepository) RelatedProducts(
	ctx context.Context, categoryName, excludeID string, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.RelatedProducts"

	oid, err := objectID(excludeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.D{
		{Key: "category.name", Value: categoryName},
		{Key: "status", Value: string(domain.StatusInStock)},
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}},
	}
	docs, err := r.find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

func (r ProductsRepository) TopRatedProducts(
	ctx context.Context, limit int,
) ([]domain.Product, error) {
	const op = "ProductsRepository.TopRatedProducts"

	docs, err := r.aggregate(ctx, topRatedPipeline(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

func (r ProductsRepository) StockOutProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.StockOutProducts"

	filter := bson.D{{Key: "status", Value: string(domain.StatusOutOfStock)}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	docs, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

func (r ProductsRepository) PushReview(
	ctx context.Context, productID, reviewID string,
) error {
	const op = "ProductsRepository.PushReview"

	pid, err := objectID(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rid, err := objectID(reviewID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: pid}},
		stage("$push", bson.D{{Key: "reviews", Value: rid}}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) PullReview(
	ctx context.Context, productID, reviewID string,
) error {
	const op = "ProductsRepository.PullReview"

	pid, err := objectID(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rid, err := objectID(reviewID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: pid}},
		stage("$pull", bson.D{{Key: "reviews", Value: rid}}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) ClearReviews(ctx context.Context, productID string) error {
	const op = "ProductsRepository.ClearReviews"

	pid, err := objectID(productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: pid}},
		stage("$set", bson.D{{Key: "reviews", Value: bson.A{}}}),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func (r ProductsRepository) TypeProducts(
	ctx context.Context, l domain.TypeListing,
) ([]domain.Product, error) {
	const op = "ProductsRepository.TypeProducts"

	docs, err := r.aggregate(ctx, typeListingPipeline(l))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

// ReviewedProducts returns in-stock products having at least one review.
func (r ProductsRepository) ReviewedProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ReviewedProducts"

	docs, err := r.aggregate(ctx, reviewedPipeline())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return productsToDomain(docs), nil
}

// ExistingSKUs returns the stored SKUs among skus.
func (r ProductsRepository) ExistingSKUs(
	ctx context.Context, skus []string,
) ([]string, error) {
	const op = "ProductsRepository.ExistingSKUs"

	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "sku", Value: bson.D{{Key: "$in", Value: skus}}}},
		options.Find().SetProjection(bson.D{{Key: "sku", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var docs []struct {
		SKU string `bson:"sku"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	existing := make([]string, len(docs))
	for i, d := range docs {
		existing[i] = d.SKU
	}
	return existing, nil
}

// SetQuantities writes quantity and status of every update in one
// unordered bulk write and returns the number of matched products.
//
// Unknown SKUs are never inserted. On a partial failure the matched
// count of the successful writes is returned with the error.
func (r ProductsRepository) SetQuantities(
	ctx context.Context, us []domain.QuantityUpdate,
) (int, error) {
	const op = "ProductsRepository.SetQuantities"

	if len(us) == 0 {
		return 0, nil
	}

	res, err := r.coll.BulkWrite(ctx,
		quantityModels(us, time.Now().UTC()), unorderedBulk(),
	)
	var matched int
	if res != nil {
		matched = int(res.MatchedCount)
	}
	if err != nil {
		return matched, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return matched, nil
}

// quantityModels builds one sku matched update per entry. Missing SKUs
// are never inserted.
func quantityModels(us []domain.QuantityUpdate, now time.Time) []mongo.WriteModel {
	models := make([]mongo.WriteModel, len(us))
	for i, u := range us {
		models[i] = mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "sku", Value: u.SKU}}).
			SetUpdate(stage("$set", bson.D{
				{Key: "quantity", Value: u.Quantity},
				{Key: "status", Value: string(u.Status())},
				{Key: "updatedAt", Value: now},
			})).
			SetUpsert(false)
	}
	return models
}

func unorderedBulk() *options.BulkWriteOptions {
	return options.BulkWrite().SetOrdered(false)
}

func (r ProductsRepository) QueryProducts(
	ctx context.Context, q domain.ProductQuery,
) ([]domain.Product, int, error) {
	const op = "ProductsRepository.QueryProducts"

	cur, err := r.coll.Aggregate(ctx, productsPipeline(q),
		options.Aggregate().SetAllowDiskUse(true),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var facets []struct {
		Products   []productDoc `bson:"products"`
		TotalCount []struct {
			Count int `bson:"count"`
		} `bson:"totalCount"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	if len(facets) == 0 {
		return []domain.Product{}, 0, nil
	}

	var total int
	if len(facets[0].TotalCount) != 0 {
		total = facets[0].TotalCount[0].Count
	}
	return productsToDomain(facets[0].Products), total, nil
}

func (r ProductsRepository) ProductIDs(ctx context.Context) ([]string, error) {
	const op = "ProductsRepository.ProductIDs"

	ids, err := r.ids(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return hexIDs(ids), nil
}

// ProductIDsByCategory groups product ids by the category they reference.
func (r ProductsRepository) ProductIDsByCategory(
	ctx context.Context,
) (map[string][]string, error) {
	const op = "ProductsRepository.ProductIDsByCategory"

	cur, err := r.coll.Aggregate(ctx, categoryMembersPipeline())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var groups []struct {
		CategoryID *primitive.ObjectID  `bson:"_id"`
		Products   []primitive.ObjectID `bson:"products"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	byCategory := make(map[string][]string, len(groups))
	for _, g := range groups {
		if g.CategoryID == nil {
			continue
		}
		byCategory[g.CategoryID.Hex()] = hexIDs(g.Products)
	}
	return byCategory, nil
}

// ExpiredDiscountIDs returns in-stock products whose discount offer ended
// before now.
func (r ProductsRepository) ExpiredDiscountIDs(
	ctx context.Context, now time.Time,
) ([]string, error) {
	const op = "ProductsRepository.ExpiredDiscountIDs"

	filter := bson.D{
		{Key: "status", Value: string(domain.StatusInStock)},
		{Key: "discount", Value: bson.D{{Key: "$gt", Value: 0}}},
		{Key: "offerDate.endDate", Value: bson.D{{Key: "$lt", Value: now}}},
	}
	ids, err := r.ids(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return hexIDs(ids), nil
}

func (r ProductsRepository) ClearDiscounts(
	ctx context.Context, ids []string,
) (int, error) {
	const op = "ProductsRepository.ClearDiscounts"

	oids, err := objectIDs(ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}},
		bson.D{
			{Key: "$set", Value: bson.D{{Key: "discount", Value: 0}}},
			{Key: "$unset", Value: bson.D{{Key: "offerDate.endDate", Value: ""}}},
		},
	)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return int(res.MatchedCount), nil
}

func (r ProductsRepository) find(
	ctx context.Context, filter bson.D, opts ...*options.FindOptions,
) ([]productDoc, error) {
	cur, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, storeErr(err)
	}
	docs := []productDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr(err)
	}
	return docs, nil
}

func (r ProductsRepository) aggregate(
	ctx context.Context, pipeline mongo.Pipeline,
) ([]productDoc, error) {
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	docs := []productDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr(err)
	}
	return docs, nil
}

func (r ProductsRepository) ids(
	ctx context.Context, filter bson.D,
) ([]primitive.ObjectID, error) {
	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, storeErr(err)
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr(err)
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}
