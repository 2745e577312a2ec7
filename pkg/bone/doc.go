// Package bone defines typed entity fields ("bones") and the Schema that
// combines them into an entity type.
//
// A bone converts between three representations of a value: the data a
// client submits (FromClient), the decoded value kept in a Skeleton, and
// the stored Entity document (Serialize and Unserialize). Bones also turn
// client filter parameters into Query conditions and feed search tags and
// search document fields.
//
//	schema := bone.NewSchema("page").
//		Add("title", bone.NewText(bone.TextConfig{StripTags: true}, bone.Required(), bone.Searchable())).
//		Add("body", bone.NewText(bone.TextConfig{Languages: []string{"de", "en"}}, bone.Searchable())).
//		Add("price", bone.NewNumeric(bone.NumericConfig{Precision: 2})).
//		Add("status", bone.NewSelect(bone.Choices("draft", "published")))
//
//	sk := schema.NewSkeleton()
//	if errs := schema.FromClient(ctx, sk, data); len(errs) > 0 {
//		return errs
//	}
//	schema.Serialize(sk)
//
// FromClient reports problems as ReadFromClientErrors whose Severity tells a
// missing field (NotSet) from a field left empty (Empty) and from a rejected
// value (Invalid). Schema.FromClient drops NotSet and Empty errors of bones
// that are not Required.
//
// Filter parameters use the bone name, optionally followed by an operator
// suffix: "price$lt", "price$gt", "price$le", "price$ge", "price$ne" and
// "title$lk" for prefix matches. Query.BSON renders the result as a MongoDB
// filter document.
package bone
