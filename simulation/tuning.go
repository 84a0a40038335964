package simulation

// tuning.go - Default parameters for the bookstore simulation.

const (
	// DefaultRestockThreshold is the model-wide low-stock cutoff used for
	// books without an own threshold.
	DefaultRestockThreshold = 1

	// DefaultRestockAmount is the quantity added per processed restock
	// request when an employee has no configured amount.
	DefaultRestockAmount = 3

	// DefaultSteps is the number of ticks a run executes when the caller
	// does not specify one.
	DefaultSteps = 5
)
