package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lms-auth/internal/domain"
)

// MongoAdminRepository implementa AdminRepository sobre una coleccion Mongo.
type MongoAdminRepository struct {
	coll *mongo.Collection
}

func NewMongoAdminRepository(coll *mongo.Collection) *MongoAdminRepository {
	return &MongoAdminRepository{coll: coll}
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin domain.Admin) error {
	_, err := r.coll.InsertOne(ctx, newAdminDocument(admin))
	return translateMongoError(err)
}

func (r *MongoAdminRepository) GetByID(ctx context.Context, id string) (domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoAdminRepository) GetByEmail(ctx context.Context, email string) (domain.Admin, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	admins := make([]domain.Admin, 0)
	for cur.Next(ctx) {
		var doc adminDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		admins = append(admins, doc.toDomain())
	}
	return admins, cur.Err()
}

func (r *MongoAdminRepository) Save(ctx context.Context, admin domain.Admin) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": admin.ID}, newAdminDocument(admin))
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAdminRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoAdminRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoAdminRepository) findOne(ctx context.Context, filter bson.M) (domain.Admin, error) {
	var doc adminDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Admin{}, translateMongoError(err)
	}
	return doc.toDomain(), nil
}
