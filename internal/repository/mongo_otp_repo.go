package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lms-auth/internal/domain"
)

// MongoOTPRepository implementa OTPRepository. El indice TTL sobre
// expires_at elimina los vencidos; PurgeExpired queda como respaldo.
type MongoOTPRepository struct {
	coll *mongo.Collection
}

func NewMongoOTPRepository(coll *mongo.Collection) *MongoOTPRepository {
	return &MongoOTPRepository{coll: coll}
}

func (r *MongoOTPRepository) Create(ctx context.Context, otp domain.OTP) error {
	_, err := r.coll.InsertOne(ctx, newOTPDocument(otp))
	return translateMongoError(err)
}

func (r *MongoOTPRepository) Latest(ctx context.Context, email string, purpose domain.OTPPurpose) (domain.OTP, error) {
	filter := bson.M{"email": email, "purpose": string(purpose)}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc otpDocument
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		return domain.OTP{}, translateMongoError(err)
	}
	return doc.toDomain(), nil
}

func (r *MongoOTPRepository) DeleteByEmailPurpose(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"email": email, "purpose": string(purpose)})
	return err
}

func (r *MongoOTPRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now.UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
