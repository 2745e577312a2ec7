// Package datastore persists bone skeletons in MongoDB.
//
// Connect and ConnectDatabase open a client from a Config, typically loaded
// with config.Load[datastore.Config](). Healthcheck wraps a ping for
// readiness probes.
//
// An EntityStore stores one schema in the collection named after
// Schema.Kind. Put serializes the skeleton, assigns a UUID key to new
// entities and writes the document together with its search tags; Get and
// Run unserialize stored documents back into skeletons. Query accepts the
// raw client filter parameters understood by Schema.BuildQuery:
//
//	store := datastore.NewEntityStore(db, schema,
//		datastore.WithIndexer(indexer),
//		datastore.WithStoreLogger(log),
//	)
//	sk := schema.NewSkeleton()
//	if errs := schema.FromClient(ctx, sk, data); len(errs) > 0 {
//		return errs
//	}
//	if err := store.Put(ctx, sk); err != nil {
//		return err
//	}
//	pages, err := store.Query(ctx, map[string]any{"price$lt": "10", "orderby": "price"})
//
// TreeRepository implements bone.TreeRepository on the "<kind>_repository"
// collection, whose documents link to their parent through "parentdir".
package datastore
