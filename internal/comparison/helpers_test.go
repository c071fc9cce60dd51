package comparison

func price(v float64) *float64 {
	return &v
}

func rec(id, title, category, brand string, p *float64) Record {
	return Record{ProductID: id, Title: title, Category: category, Brand: brand, Price: p, InStock: true}
}

func groupKeys(groups []*ComparisonGroup) []string {
	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.GroupKey)
	}
	return keys
}
