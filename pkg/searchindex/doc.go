// Package searchindex mirrors bone search fields into OpenSearch.
//
// Connect creates a client from a Config and performs an initial
// Healthcheck. An Indexer writes one document per entity:
//
//	ix := searchindex.NewIndexer(client, cfg.Index, searchindex.WithLogger(log))
//	if err := ix.EnsureIndex(ctx); err != nil {
//		return err
//	}
//	store := datastore.NewEntityStore(db, schema, datastore.WithIndexer(ix))
//
// Documents hold one property per search field, suffixed with the language
// for multi-language text ("body_en"), and the entity search tags under
// "search_tags". HTML fields are reduced to plain text with the bluemonday
// strict policy before indexing.
package searchindex
