package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskify/taskify-api/internal/core/domain"
)

const todosCollection = "todos"

type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *MongoTodoRepository {
	return &MongoTodoRepository{coll: db.Collection(todosCollection)}
}

type mongoTodo struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Text      string             `bson:"todo"`
	Done      bool               `bson:"is_done"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *MongoTodoRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	doc := mongoTodo{
		UserID:    todo.UserID,
		Text:      todo.Text,
		Done:      todo.Done,
		CreatedAt: todo.CreatedAt.Unix(),
		UpdatedAt: todo.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	created := *todo
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoTodoRepository) FindByOwner(ctx context.Context, userID string) ([]domain.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := []domain.Todo{}
	for cur.Next(ctx) {
		var mt mongoTodo
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, *mt.toDomain())
	}
	return todos, cur.Err()
}

func (r *MongoTodoRepository) FindByID(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}

	var mt mongoTodo
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&mt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTodoRepository) Update(ctx context.Context, userID string, todo *domain.Todo) (*domain.Todo, error) {
	oid, err := primitive.ObjectIDFromHex(todo.ID)
	if err != nil {
		return nil, domain.ErrTodoNotFound
	}

	// Owner is part of the filter, never the update: a todo can't change hands.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{
			"todo":       todo.Text,
			"is_done":    todo.Done,
			"updated_at": todo.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTodoNotFound
	}
	return todo, nil
}

func (r *MongoTodoRepository) Delete(ctx context.Context, userID, todoID string) error {
	oid, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return domain.ErrTodoNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (mt *mongoTodo) toDomain() *domain.Todo {
	return &domain.Todo{
		ID:        mt.ID.Hex(),
		UserID:    mt.UserID,
		Text:      mt.Text,
		Done:      mt.Done,
		CreatedAt: unixToTime(mt.CreatedAt),
		UpdatedAt: unixToTime(mt.UpdatedAt),
	}
}
