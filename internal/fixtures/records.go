// Package fixtures synthesizes a small, internally consistent e-commerce
// dataset: customers, products, orders, order items and payments.
//
// Every reference a record makes points at a record generated earlier in the
// same run, and every order carries at least one item and exactly one
// payment. Output is a pure function of the seed, the counts and the
// reference time.
package fixtures

import (
	"fmt"
	"strconv"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/shopspring/decimal"
)

// Customer is a generated shopper.
type Customer struct {
	ID        string
	FullName  string
	Email     string
	City      string
	CreatedAt time.Time
}

// Product is a generated catalog entry.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    decimal.Decimal
}

// Order references exactly one customer.
type Order struct {
	ID         string
	CustomerID string
	OrderDate  time.Time
	Status     string
}

// OrderItem references one order and one product.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}

// Payment settles exactly one order.
type Payment struct {
	ID      string
	OrderID string
	Amount  decimal.Decimal
	Mode    string
	PaidAt  time.Time
}

// Dataset is the full output of one generator run, each slice in id order.
type Dataset struct {
	Customers  []Customer
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Payments   []Payment
}

// Identifier prefixes.
const (
	customerPrefix = "CUST"
	productPrefix  = "PROD"
	orderPrefix    = "ORD"
	itemPrefix     = "ITEM"
	paymentPrefix  = "PAY"
)

// formatID renders a 1-based sequence number as PREFIX0001.
func formatID(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

func formatTime(t time.Time) string {
	return t.Format(schema.TimestampLayout)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (c Customer) row() []string {
	return []string{c.ID, c.FullName, c.Email, c.City, formatTime(c.CreatedAt)}
}

func (p Product) row() []string {
	return []string{p.ID, p.Name, p.Category, formatMoney(p.Price)}
}

func (o Order) row() []string {
	return []string{o.ID, o.CustomerID, formatTime(o.OrderDate), o.Status}
}

func (i OrderItem) row() []string {
	return []string{i.ID, i.OrderID, i.ProductID, strconv.Itoa(i.Quantity)}
}

func (p Payment) row() []string {
	return []string{p.ID, p.OrderID, formatMoney(p.Amount), p.Mode, formatTime(p.PaidAt)}
}
