package mongodb

// Collection names.
const (
	UsersCollection      = "users"
	ProductsCollection   = "products"
	CategoriesCollection = "categories"
	OrdersCollection     = "orders"
	CouponsCollection    = "coupons"
)
