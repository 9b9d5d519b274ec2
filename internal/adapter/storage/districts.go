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

var _ port.DistrictsStorage = (*DistrictsRepository)(nil)

type DistrictsRepository struct {
	coll *mongo.Collection
}

func NewDistrictsRepository(db MongoDB) DistrictsRepository {
	return DistrictsRepository{db.Database().Collection(districtsCollection)}
}

func (r DistrictsRepository) InsertDistrict(
	ctx context.Context, d domain.DeliveryDistrict,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictsRepository.InsertDistrict"

	now := time.Now().UTC()
	doc := districtDoc{
		ID:           primitive.NewObjectID(),
		Name:         d.Name,
		DeliveryCost: d.DeliveryCost,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r DistrictsRepository) ReadDistricts(
	ctx context.Context,
) ([]domain.DeliveryDistrict, error) {
	const op = "DistrictsRepository.ReadDistricts"

	cur, err := r.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var docs []districtDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	ds := make([]domain.DeliveryDistrict, len(docs))
	for i, d := range docs {
		ds[i] = d.toDomain()
	}
	return ds, nil
}

func (r DistrictsRepository) ReadDistrict(
	ctx context.Context, id string,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictsRepository.ReadDistrict"

	oid, err := objectID(id)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc districtDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r DistrictsRepository) UpdateDistrict(
	ctx context.Context, id string, p domain.DistrictPatch,
) (domain.DeliveryDistrict, error) {
	const op = "DistrictsRepository.UpdateDistrict"

	oid, err := objectID(id)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, err)
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.DeliveryCost != nil {
		set = append(set, bson.E{Key: "deliveryCost", Value: *p.DeliveryCost})
	}

	var doc districtDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		stage("$set", set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.DeliveryDistrict{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r DistrictsRepository) DeleteDistrict(ctx context.Context, id string) error {
	const op = "DistrictsRepository.DeleteDistrict"
	if err := deleteByID(ctx, r.coll, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
