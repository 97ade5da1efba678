// Package mongo implements recordsource.Source on MongoDB.
//
// Compiled filters map directly onto MongoDB query documents:
//
//	Equality{Value: v}         -> {field: v}
//	Membership{Values: vs}     -> {field: {$in: vs}}
//	Comparison{Gte: a, Lte: b} -> {field: {$gte: a, $lte: b}}
//
// and pipeline stages onto aggregation stages ($limit, $match, $sort, $group
// with $avg/$sum/$min/$max/$first, $replaceRoot). A first-document group with
// no field keeps "$$ROOT".
//
// MongoClient owns the driver connection; Adapter executes queries against
// one database and reports each operation to an optional observer. Driver
// errors are translated to recordsource sentinels: a missing document is
// recordsource.ErrNotFound, network and server selection failures are
// recordsource.ErrStorageUnavailable, and rejected pipelines are
// filters.ErrInvalidPipeline.
//
// Direct usage:
//
//	client, err := mongo.NewMongoClient(mongo.DefaultConfig().WithURI("mongodb://localhost:27017"), log)
//	if err != nil {
//	    return err
//	}
//	defer client.Close(context.Background())
//	source := mongo.NewAdapter(client.Database())
//
// With fx, include mongo.FXModule next to a mongo.Config; it provides
// *MongoClient, *Adapter and recordsource.Source.
package mongo
