package domain

type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         Money
	CategoryID    int64
	StockQuantity int
	ImageURL      string
}

// CartEntry is the remote store's record of a (user, product) pairing.
type CartEntry struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
}

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID       int64
	Username string
	Email    string
	Role     Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
