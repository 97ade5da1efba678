// Package tracer wires OpenTelemetry tracing for geoquery.
//
// NewClient installs a global TracerProvider (and the W3C trace-context and
// baggage propagators) described by Config. When EnableExport is set, spans
// are batched to an OTLP/HTTP collector; otherwise they are created for log
// correlation only.
//
//	ctx, span := t.StartSpan(ctx, "resale.GetRecords")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"collection": "cleanedResale"})
//	if err != nil {
//	    t.RecordErrorOnSpan(span, err)
//	}
package tracer
