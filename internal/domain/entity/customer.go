package entity

import "time"

// Customer representa un cliente del vendedor (comprador de leche).
type Customer struct {
	ID        string
	VendorID  string
	Name      string
	Phone     string
	CreatedAt time.Time
}
