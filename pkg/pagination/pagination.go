package pagination

const (
	// DefaultTake is the standard page size when take is not provided.
	DefaultTake = 50
	// MaxTake caps how many rows any list query can request.
	MaxTake = 200
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Take int
	Skip int
}

// Normalize enforces the configured default and maximum page size and a
// non-negative offset.
func (p Params) Normalize() Params {
	take := p.Take
	if take <= 0 {
		take = DefaultTake
	}
	if take > MaxTake {
		take = MaxTake
	}
	skip := p.Skip
	if skip < 0 {
		skip = 0
	}
	return Params{Take: take, Skip: skip}
}

// Page wraps a page of rows with the total row count for the filter.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
