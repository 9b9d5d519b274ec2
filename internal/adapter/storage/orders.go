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
	_ port.OrdersStorage   = (*OrdersRepository)(nil)
	_ port.InvoiceSequence = (*InvoiceCounter)(nil)
)

type OrdersRepository struct {
	coll *mongo.Collection
}

func NewOrdersRepository(db MongoDB) OrdersRepository {
	return OrdersRepository{db.Database().Collection(ordersCollection)}
}

func (r OrdersRepository) InsertOrder(
	ctx context.Context, o domain.Order,
) (domain.Order, error) {
	const op = "OrdersRepository.InsertOrder"

	district, err := refID(o.DistrictID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]orderItemDoc, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDoc(it)
	}

	now := time.Now().UTC()
	doc := orderDoc{
		ID:               primitive.NewObjectID(),
		Invoice:          o.Invoice,
		FullName:         o.FullName,
		PhoneNumber:      o.PhoneNumber,
		EmailAddress:     o.EmailAddress,
		Products:         items,
		Amount:           o.Amount,
		DiscountedAmount: o.DiscountedAmount,
		Note:             o.Note,
		DistrictID:       district,
		City:             o.City,
		Street:           o.Street,
		Building:         o.Building,
		Floor:            o.Floor,
		PaymentMethod:    string(o.PaymentMethod),
		Status:           string(o.Status),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

func (r OrdersRepository) ReadOrder(
	ctx context.Context, id string,
) (domain.Order, error) {
	const op = "OrdersRepository.ReadOrder"

	oid, err := objectID(id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc orderDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

// ReadOrders returns orders newest first. An empty status matches any.
func (r OrdersRepository) ReadOrders(
	ctx context.Context, status domain.OrderStatus,
) ([]domain.Order, error) {
	const op = "OrdersRepository.ReadOrders"

	filter := bson.D{}
	if status != "" {
		filter = append(filter, bson.E{Key: "status", Value: string(status)})
	}

	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, storeErr(err))
	}

	orders := make([]domain.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.toDomain()
	}
	return orders, nil
}

func (r OrdersRepository) SetOrderStatus(
	ctx context.Context, id string, status domain.OrderStatus,
) (domain.Order, error) {
	const op = "OrdersRepository.SetOrderStatus"

	oid, err := objectID(id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	var doc orderDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		stage("$set", bson.D{
			{Key: "status", Value: string(status)},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.toDomain(), nil
}

const invoiceCounterID = "invoice"

// An InvoiceCounter hands out order invoice numbers from a counter document.
type InvoiceCounter struct {
	coll *mongo.Collection
}

func NewInvoiceCounter(db MongoDB) InvoiceCounter {
	return InvoiceCounter{db.Database().Collection(countersCollection)}
}

// NextInvoice atomically increments the counter, starting at 1.
func (c InvoiceCounter) NextInvoice(ctx context.Context) (int64, error) {
	const op = "InvoiceCounter.NextInvoice"

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := c.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: invoiceCounterID}},
		stage("$inc", bson.D{{Key: "seq", Value: int64(1)}}),
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, storeErr(err))
	}
	return doc.Seq, nil
}
