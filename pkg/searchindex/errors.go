package searchindex

import "errors"

var (
	// ErrConnectionFailed indicates the client could not be created.
	ErrConnectionFailed = errors.New("opensearch connection failed")

	// ErrHealthcheckFailed indicates the cluster is unreachable or unhealthy.
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")

	ErrIndexFailed  = errors.New("failed to index document")
	ErrDeleteFailed = errors.New("failed to delete document")
	ErrCreateIndex  = errors.New("failed to create search index")
	ErrSearchFailed = errors.New("search request failed")
)
