package query

func Execute[DB any, Domain any](
	q *Query[DB],
	page Page,
	converter func(*DB) (*Domain, error),
) (*Result[*Domain], error) {
	return Paginate(q, page, converter)
}

func ExecuteAll[DB any, Domain any](
	q *Query[DB],
	converter func(*DB) (*Domain, error),
) ([]*Domain, error) {
	rows, err := q.Find()
	if err != nil {
		return nil, err
	}
	return convertAll(rows, converter)
}

func convertAll[DB any, Domain any](rows []DB, converter func(*DB) (*Domain, error)) ([]*Domain, error) {
	items := make([]*Domain, 0, len(rows))
	for i := range rows {
		item, err := converter(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
