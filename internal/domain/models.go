package domain

type Product struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	Description  string `db:"description" json:"description"`
	Category     string `db:"category" json:"category"`
	PricePennies int64  `db:"price_pennies" json:"pricePennies"`
	StockCount   int    `db:"stock_count" json:"stockCount"`
}

type Address struct {
	ID              int64  `db:"id" json:"id"`
	HouseNameNumber string `db:"house_name_number" json:"houseNameNumber"`
	StreetName      string `db:"street_name" json:"streetName"`
	TownCityName    string `db:"town_city_name" json:"townCityName"`
	PostCode        string `db:"post_code" json:"postCode"`
}

// CartItem is a resolved cart line: the stored count joined with the live
// product record. Cart views never freeze product data.
type CartItem struct {
	Count   int     `json:"count"`
	Product Product `json:"product"`
}

type Cart struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	CreatedAt string     `db:"created_at" json:"createdAt"`
	Ordered   bool       `db:"ordered" json:"ordered"`
	Items     []CartItem `json:"items"`
}

// OrderItem is a frozen quantity from checkout time; only the product
// reference stays live.
type OrderItem struct {
	Count   int     `json:"count"`
	Product Product `json:"product"`
}

type Order struct {
	ID        int64       `db:"id" json:"id"`
	CreatedAt string      `db:"created_at" json:"createdAt"`
	Address   Address     `json:"address"`
	Items     []OrderItem `json:"items"`
}
