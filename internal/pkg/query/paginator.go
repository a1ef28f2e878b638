package query

import "Cashline/internal/pkg"

type Page struct {
	Number int
	Size   int
}

func (p *Page) offset() int {
	if p.Number < 1 {
		p.Number = 1
	}
	return (p.Number - 1) * p.Size
}

func (p *Page) normalize() {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = pkg.DefaultPageSize
	}
	if p.Size > pkg.MaxPageSize {
		p.Size = pkg.MaxPageSize
	}
}

func FromPagination(p *pkg.PaginationParams) Page {
	p = pkg.NormalizePagination(p)
	return Page{Number: p.Page, Size: p.Limit}
}

type Result[T any] struct {
	Data  []T
	Page  int
	Size  int
	Total int64
}

func Paginate[DBModel any, Domain any](
	q *Query[DBModel],
	page Page,
	converter func(*DBModel) (*Domain, error),
) (*Result[*Domain], error) {
	page.normalize()

	total, err := q.Count()
	if err != nil {
		return nil, err
	}

	db := q.DB()
	if q.OrderBy() != "" {
		db = db.Order(q.OrderBy())
	}

	var rows []DBModel
	err = db.Offset(page.offset()).Limit(page.Size).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items, err := convertAll(rows, converter)
	if err != nil {
		return nil, err
	}

	return &Result[*Domain]{
		Data:  items,
		Page:  page.Number,
		Size:  page.Size,
		Total: total,
	}, nil
}
