package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productDocument struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Photo       string               `bson:"photo,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	SellerID    string               `bson:"seller_id"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type cartItemDocument struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type cartDocument struct {
	ID          string               `bson:"_id"`
	Owner       string               `bson:"owner"`
	Items       []cartItemDocument   `bson:"items"`
	TotalAmount primitive.Decimal128 `bson:"total_amount"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

type orderItemDocument struct {
	ProductID string               `bson:"product_id"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
}

type orderDocument struct {
	ID            string               `bson:"_id"`
	Owner         string               `bson:"owner"`
	Products      []orderItemDocument  `bson:"products"`
	TotalAmount   primitive.Decimal128 `bson:"total_amount"`
	Status        string               `bson:"status"`
	PaymentMethod string               `bson:"payment_method,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

type mongoRepo struct {
	products *mongo.Collection
	carts    *mongo.Collection
	orders   *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *mongoRepo {
	return &mongoRepo{
		products: db.Collection("products"),
		carts:    db.Collection("carts"),
		orders:   db.Collection("orders"),
	}
}

// CreateIndexes makes the owner key unique per cart and indexes order listing.
func (r *mongoRepo) CreateIndexes(ctx context.Context) error {
	_, err := r.carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	_, err = r.orders.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *mongoRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]entities.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cur, err := r.products.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]entities.Product, 0, len(docs))
	for _, d := range docs {
		price, err := fromDecimal128(d.Price)
		if err != nil {
			return nil, err
		}
		products = append(products, entities.Product{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Photo:       d.Photo,
			Price:       price,
			SellerID:    d.SellerID,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return products, nil
}

func (r *mongoRepo) GetCart(ctx context.Context, owner string) (entities.Cart, error) {
	var doc cartDocument
	err := r.carts.FindOne(ctx, bson.M{"owner": owner}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Cart{}, entities.ErrCartNotFound
	}
	if err != nil {
		return entities.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}

	total, err := fromDecimal128(doc.TotalAmount)
	if err != nil {
		return entities.Cart{}, err
	}

	items := make([]entities.CartItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, entities.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return entities.Cart{
		ID:          doc.ID,
		Owner:       doc.Owner,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (r *mongoRepo) SaveCart(ctx context.Context, c entities.Cart) error {
	total, err := toDecimal128(c.TotalAmount)
	if err != nil {
		return err
	}

	items := make([]cartItemDocument, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemDocument{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	update := bson.M{
		"$set": bson.M{
			"items":        items,
			"total_amount": total,
			"updated_at":   c.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":        c.ID,
			"created_at": c.CreatedAt,
		},
	}

	_, err = r.carts.UpdateOne(ctx, bson.M{"owner": c.Owner}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (r *mongoRepo) DeleteCart(ctx context.Context, owner string) error {
	if _, err := r.carts.DeleteOne(ctx, bson.M{"owner": owner}); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *mongoRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	doc, err := orderToDocument(o)
	if err != nil {
		return err
	}
	if _, err := r.orders.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *mongoRepo) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	var doc orderDocument
	err := r.orders.FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	return documentToOrder(doc)
}

func (r *mongoRepo) ListOrdersByOwner(ctx context.Context, owner string) ([]entities.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.orders.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	orders := make([]entities.Order, 0, len(docs))
	for _, d := range docs {
		o, err := documentToOrder(d)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *mongoRepo) UpdateOrderStatus(ctx context.Context, orderID string, status entities.OrderStatus, updatedAt time.Time) error {
	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": updatedAt}}

	res, err := r.orders.UpdateOne(ctx, bson.M{"_id": orderID}, update)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func (r *mongoRepo) DeleteOrder(ctx context.Context, orderID string) error {
	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}

func orderToDocument(o entities.Order) (orderDocument, error) {
	total, err := toDecimal128(o.TotalAmount)
	if err != nil {
		return orderDocument{}, err
	}

	products := make([]orderItemDocument, 0, len(o.Products))
	for _, it := range o.Products {
		price, err := toDecimal128(it.Price)
		if err != nil {
			return orderDocument{}, err
		}
		products = append(products, orderItemDocument{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
	}

	return orderDocument{
		ID:            o.ID,
		Owner:         o.Owner,
		Products:      products,
		TotalAmount:   total,
		Status:        string(o.Status),
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func documentToOrder(d orderDocument) (entities.Order, error) {
	total, err := fromDecimal128(d.TotalAmount)
	if err != nil {
		return entities.Order{}, err
	}

	products := make([]entities.OrderItem, 0, len(d.Products))
	for _, it := range d.Products {
		price, err := fromDecimal128(it.Price)
		if err != nil {
			return entities.Order{}, err
		}
		products = append(products, entities.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
	}

	return entities.Order{
		ID:            d.ID,
		Owner:         d.Owner,
		Products:      products,
		TotalAmount:   total,
		Status:        entities.OrderStatus(d.Status),
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert amount %s: %w", d, err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse amount %s: %w", v, err)
	}
	return d, nil
}
