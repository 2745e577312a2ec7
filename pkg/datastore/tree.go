package datastore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TreeCollection returns the collection holding the directories of the tree
// kind.
func TreeCollection(kind string) string {
	return kind + "_repository"
}

// TreeNode is a directory document. Repository roots have no parent.
type TreeNode struct {
	Key       string `bson:"_id"`
	ParentDir string `bson:"parentdir,omitempty"`
	Name      string `bson:"name"`
}

// TreeRepository resolves directories stored in MongoDB. It satisfies
// bone.TreeRepository.
type TreeRepository struct {
	collection *mongo.Collection
}

func NewTreeRepository(db *mongo.Database, kind string) *TreeRepository {
	return &TreeRepository{collection: db.Collection(TreeCollection(kind))}
}

func (r *TreeRepository) NodeExists(ctx context.Context, key string) (bool, error) {
	n, err := r.collection.CountDocuments(ctx, bson.D{{Key: KeyField, Value: key}}, options.Count().SetLimit(1))
	if err != nil {
		return false, errors.Join(ErrFailedToLoad, err)
	}
	return n > 0, nil
}

func (r *TreeRepository) FindChild(ctx context.Context, parentKey, name string) (string, bool, error) {
	var node TreeNode
	err := r.collection.FindOne(ctx, bson.D{
		{Key: "parentdir", Value: parentKey},
		{Key: "name", Value: name},
	}).Decode(&node)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Join(ErrFailedToLoad, err)
	}
	return node.Key, true, nil
}

// AddNode creates a directory called name below parentKey and returns its
// key. An empty parentKey creates a repository root.
func (r *TreeRepository) AddNode(ctx context.Context, parentKey, name string) (string, error) {
	node := TreeNode{Key: uuid.NewString(), ParentDir: parentKey, Name: name}
	if _, err := r.collection.InsertOne(ctx, node); err != nil {
		return "", errors.Join(ErrFailedToStore, err)
	}
	return node.Key, nil
}
