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

var _ port.TagsStorage = (*TagsRepository)(nil)

type TagsRepository struct {
	coll *mongo.Collection
}

func NewTagsRepository(db MongoDB) TagsRepository {
	return TagsRepository{db.Database().Collection(tagsCollection)}
}

func (r TagsRepository) ReadTagByName(
	ctx context.Context, name string,
) (domain.Tag, error) {
	const op = "TagsRepository.ReadTagByName"

	var doc tagDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "name", Value: name}}).Decode(&doc)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r TagsRepository) InsertTag(
	ctx context.Context, name string,
) (domain.Tag, error) {
	const op = "TagsRepository.InsertTag"

	now := time.Now().UTC()
	doc := tagDoc{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Tag{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r TagsRepository) ReadTags(ctx context.Context) ([]domain.Tag, error) {
	const op = "TagsRepository.ReadTags"

	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var docs []tagDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	tags := make([]domain.Tag, len(docs))
	for i, d := range docs {
		tags[i] = d.toDomain()
	}
	return tags, nil
}

func (r TagsRepository) DeleteTag(ctx context.Context, id string) error {
	const op = "TagsRepository.DeleteTag"
	if err := deleteByID(ctx, r.coll, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
