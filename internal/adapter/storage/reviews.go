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
)

var _ port.ReviewsStorage = (*ReviewsRepository)(nil)

type ReviewsRepository struct {
	coll *mongo.Collection
}

func NewReviewsRepository(db MongoDB) ReviewsRepository {
	return ReviewsRepository{db.Database().Collection(reviewsCollection)}
}

func (r ReviewsRepository) InsertReview(
	ctx context.Context, rv domain.Review,
) (domain.Review, error) {
	const op = "ReviewsRepository.InsertReview"

	pid, err := objectID(rv.ProductID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	doc := reviewDoc{
		ID:          primitive.NewObjectID(),
		ProductID:   pid,
		Name:        rv.Name,
		Email:       rv.Email,
		PhoneNumber: rv.PhoneNumber,
		Rating:      rv.Rating,
		Comment:     rv.Comment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// DeleteReview removes the review and returns it.
func (r ReviewsRepository) DeleteReview(
	ctx context.Context, id string,
) (domain.Review, error) {
	const op = "ReviewsRepository.DeleteReview"

	oid, err := objectID(id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc reviewDoc
	err = r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return domain.Review{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// DeleteProductReviews removes every review of the product and returns
// how many were deleted.
func (r ReviewsRepository) DeleteProductReviews(
	ctx context.Context, productID string,
) (int, error) {
	const op = "ReviewsRepository.DeleteProductReviews"

	pid, err := objectID(productID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "productId", Value: pid}})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return int(res.DeletedCount), nil
}
