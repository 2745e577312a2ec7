package datastore

import "errors"

var (
	ErrFailedToConnect   = errors.New("failed to connect to mongo")
	ErrHealthcheckFailed = errors.New("mongo healthcheck failed")
	ErrNotFound          = errors.New("entity not found")
	ErrFailedToStore     = errors.New("failed to store entity")
	ErrFailedToLoad      = errors.New("failed to load entity")
	ErrFailedToDelete    = errors.New("failed to delete entity")
	ErrFailedToQuery     = errors.New("failed to query entities")
	ErrFailedToIndex     = errors.New("failed to update search index")
)
