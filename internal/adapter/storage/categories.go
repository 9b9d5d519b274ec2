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

var (
	_ port.CategoriesStorage = (*CategoriesRepository)(nil)
	_ port.BrandsStorage     = (*BrandsRepository)(nil)
)

type CategoriesRepository struct {
	coll *mongo.Collection
}

func NewCategoriesRepository(db MongoDB) CategoriesRepository {
	return CategoriesRepository{db.Database().Collection(categoriesCollection)}
}

func (r CategoriesRepository) ReadCategory(
	ctx context.Context, id string,
) (domain.Category, error) {
	const op = "CategoriesRepository.ReadCategory"

	oid, err := objectID(id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc categoryDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// CategoryProducts returns the stored product list of every category.
func (r CategoriesRepository) CategoryProducts(
	ctx context.Context,
) ([]domain.CategoryProducts, error) {
	const op = "CategoriesRepository.CategoryProducts"

	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetProjection(bson.D{{Key: "products", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var docs []struct {
		ID       primitive.ObjectID   `bson:"_id"`
		Products []primitive.ObjectID `bson:"products"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	cps := make([]domain.CategoryProducts, len(docs))
	for i, d := range docs {
		cps[i] = domain.CategoryProducts{
			CategoryID: d.ID.Hex(),
			ProductIDs: hexIDs(d.Products),
		}
	}
	return cps, nil
}

// StoreCategoryProducts replaces the product list of every given category
// in one unordered bulk write.
func (r CategoriesRepository) StoreCategoryProducts(
	ctx context.Context, cps []domain.CategoryProducts,
) error {
	const op = "CategoriesRepository.StoreCategoryProducts"

	if len(cps) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(cps))
	for _, cp := range cps {
		cid, err := objectID(cp.CategoryID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		pids, err := objectIDs(cp.ProductIDs)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.D{{Key: "_id", Value: cid}}).
			SetUpdate(stage("$set", bson.D{{Key: "products", Value: pids}})),
		)
	}

	_, err := r.coll.BulkWrite(ctx, models, unorderedBulk())
	if err != nil {
		return fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return nil
}

func (r CategoriesRepository) AttachProduct(
	ctx context.Context, categoryID, productID string,
) error {
	const op = "CategoriesRepository.AttachProduct"
	err := refAttacher{r.coll}.attach(ctx, categoryID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CategoriesRepository) DetachProduct(
	ctx context.Context, categoryID, productID string,
) error {
	const op = "CategoriesRepository.DetachProduct"
	err := refAttacher{r.coll}.detach(ctx, categoryID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CategoriesRepository) AttachProducts(
	ctx context.Context, refs map[string][]string,
) error {
	const op = "CategoriesRepository.AttachProducts"
	if err := (refAttacher{r.coll}).attachMany(ctx, refs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CategoriesRepository) InsertCategory(
	ctx context.Context, c domain.Category,
) (domain.Category, error) {
	const op = "CategoriesRepository.InsertCategory"

	doc, err := newCategoryDoc(c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}
	now := time.Now().UTC()
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt, doc.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// InsertCategories stores all categories in one unordered insert.
func (r CategoriesRepository) InsertCategories(
	ctx context.Context, cs []domain.Category,
) ([]domain.Category, error) {
	const op = "CategoriesRepository.InsertCategories"

	if len(cs) == 0 {
		return []domain.Category{}, nil
	}

	now := time.Now().UTC()
	docs := make([]any, len(cs))
	created := make([]domain.Category, len(cs))
	for i, c := range cs {
		doc, err := newCategoryDoc(c)
		if err != nil {
			return nil, fmt.Errorf("%s: category %d: %w", op, i, err)
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

func (r CategoriesRepository) ReadCategories(
	ctx context.Context, f domain.CategoryFilter,
) ([]domain.Category, error) {
	const op = "CategoriesRepository.ReadCategories"

	cur, err := r.coll.Find(ctx, categoriesMatch(f),
		options.Find().SetSort(bson.D{{Key: "parent", Value: 1}, {Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	docs := []categoryDoc{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return categoriesToDomain(docs), nil
}

func (r CategoriesRepository) UpdateCategory(
	ctx context.Context, id string, p domain.CategoryPatch,
) (domain.Category, error) {
	const op = "CategoriesRepository.UpdateCategory"

	oid, err := objectID(id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, err)
	}

	set := append(categoryPatchFields(p), bson.E{Key: "updatedAt", Value: time.Now().UTC()})

	var doc categoryDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		stage("$set", set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func categoryPatchFields(p domain.CategoryPatch) bson.D {
	var set bson.D
	str := func(key string, v *string) {
		if v != nil {
			set = append(set, bson.E{Key: key, Value: *v})
		}
	}
	str("name", p.Name)
	str("parent", p.Parent)
	str("productType", p.ProductType)
	str("img", p.Image)
	str("description", p.Description)
	if p.Children != nil {
		set = append(set, bson.E{Key: "children", Value: p.Children})
	}
	if p.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*p.Status)})
	}
	return set
}

func (r CategoriesRepository) DeleteCategory(ctx context.Context, id string) error {
	const op = "CategoriesRepository.DeleteCategory"
	if err := deleteByID(ctx, r.coll, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

type BrandsRepository struct {
	coll *mongo.Collection
}

func NewBrandsRepository(db MongoDB) BrandsRepository {
	return BrandsRepository{db.Database().Collection(brandsCollection)}
}

func (r BrandsRepository) AttachProduct(
	ctx context.Context, brandID, productID string,
) error {
	const op = "BrandsRepository.AttachProduct"
	err := refAttacher{r.coll}.attach(ctx, brandID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r BrandsRepository) AttachProducts(
	ctx context.Context, refs map[string][]string,
) error {
	const op = "BrandsRepository.AttachProducts"
	if err := (refAttacher{r.coll}).attachMany(ctx, refs); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
