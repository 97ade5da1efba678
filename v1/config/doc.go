// Package config loads the settings of every component in one pass.
//
// Load starts from Default, overlays an optional YAML file and then the
// environment, and validates the result:
//
//	cfg, err := config.Load(ctx, "geoquery.yaml")
//
// Environment variables use the names declared on each component's Config,
// for example MONGO_URI, POSTGRES_HOST, HTTP_ADDRESS or BACKEND_KIND. A set
// variable always wins over the file.
package config
