package observability

import (
	"time"
)

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting adapter, e.g. "mongo" or "postgres".
	Component string

	// Operation is the operation name, e.g. "find_many".
	Operation string

	// Resource is the collection or table the operation ran against.
	Resource string

	// SubResource narrows Resource, e.g. the field of a distinct query.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the number of documents returned.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives operation reports. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans a report out to every non-nil observer.
func Multi(observers ...Observer) Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}

// Status returns "success" or "error" for ctx.
func Status(ctx OperationContext) string {
	if ctx.Error != nil {
		return "error"
	}
	return "success"
}
