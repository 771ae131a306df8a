package model

// Product は販売商品を表す。
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Category    *string
	SKU         string
}

// ProductSearchParams は商品検索の条件を表す。
// 指定された条件はすべてAND条件で結合される。
type ProductSearchParams struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
}

// DistributionCenter は注文を出荷する物流拠点を表す。
type DistributionCenter struct {
	ID        int64
	Name      string
	Latitude  float64
	Longitude float64
}
