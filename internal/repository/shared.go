package repository

// Pagination holds page-based listing parameters.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

// Offset converts the page number into a row offset.
func (p *Pagination) Offset() int32 {
	if p.PageNo <= 1 {
		return 0
	}
	return (p.PageNo - 1) * p.PageSize
}

// FilterOrder carries the raw filter and order_by expressions of a list call.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }
