// Package observability carries the hook through which storage adapters
// report each operation they perform.
//
// Adapters call ObserveOperation once per operation with the component name,
// the operation, the collection as Resource, the elapsed time, the error (if
// any) and the result size. The metrics package implements Observer to turn
// these reports into Prometheus series.
package observability
