package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pressify/articles-api/internal/core/domain"
	"github.com/pressify/articles-api/internal/core/ports"
)

const articlesCollection = "articles"

// ArticleRepository implements ports.ArticleRepository on MongoDB. Every
// operation is a single-document command; there are no multi-statement
// transactions anywhere in this gateway.
type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Article
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NotFound("article with id %q not found", id)
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return &a, nil
}

// List returns one page of matching articles ordered by creation time
// descending, plus the total matching count.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ListArticlesFilter) ([]*domain.Article, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CategoryID != "" {
		query["category_id"] = filter.CategoryID
	}
	if filter.IsFavorite != nil {
		query["is_favorite"] = *filter.IsFavorite
	}
	if filter.MinRating != nil {
		query["rating"] = bson.M{"$gte": *filter.MinRating}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	skip := int64(filter.Page-1) * int64(filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	articles, err := r.findAll(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *ArticleRepository) FindByCategoryIDs(ctx context.Context, ids []string) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"category_id": bson.M{"$in": ids}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findAll(ctx, query, opts)
}

func (r *ArticleRepository) FindByAuthorID(ctx context.Context, authorID string) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findAll(ctx, bson.M{"author_id": authorID}, opts)
}

// Update writes only the non-nil fields of upd, plus the caller-supplied
// updated_at.
func (r *ArticleRepository) Update(ctx context.Context, id string, upd ports.ArticleUpdate) error {
	set := bson.M{"updated_at": upd.UpdatedAt}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.CategoryID != nil {
		set["category_id"] = *upd.CategoryID
	}
	if upd.AuthorID != nil {
		set["author_id"] = *upd.AuthorID
	}
	if upd.Rating != nil {
		set["rating"] = *upd.Rating
	}
	return r.updateOne(ctx, id, set)
}

func (r *ArticleRepository) SetRating(ctx context.Context, id string, rating float64, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"rating": rating, "updated_at": at})
}

func (r *ArticleRepository) SetFavorite(ctx context.Context, id string, favorite bool, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"is_favorite": favorite, "updated_at": at})
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NotFound("article with id %q not found", id)
	}
	return nil
}

func (r *ArticleRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("article with id %q not found", id)
	}
	return nil
}

func (r *ArticleRepository) findAll(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Article, error) {
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cursor.Close(ctx)

	var articles []*domain.Article
	for cursor.Next(ctx) {
		var a domain.Article
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, &a)
	}
	return articles, cursor.Err()
}

func (r *ArticleRepository) ensureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
