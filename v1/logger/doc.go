// Package logger provides structured logging for geoquery services.
//
// The package follows the "accept interfaces, return structs" pattern:
//   - Logger interface: the contract consumers depend on
//   - LoggerClient struct: the zap-backed implementation
//   - NewLoggerClient constructor: returns *LoggerClient
//   - FXModule: provides both *LoggerClient and Logger
//
// Every method takes a message, an optional error and optional maps of
// structured fields:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "geoquery"})
//	log.Info("server started", nil, map[string]interface{}{"addr": ":8080"})
//
// The *WithContext variants add trace_id and span_id from the OpenTelemetry
// span carried by ctx when EnableTracing is set:
//
//	log.ErrorWithContext(ctx, "query failed", err, map[string]interface{}{
//	    "collection": "cleanedResale",
//	})
//
// Packages that log declare their own small Logger interface with only the
// methods they use, so they can be tested with a mock and wired with
// *LoggerClient.
package logger
