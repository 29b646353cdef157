package fixtures

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source is the random stream the generator draws from.
// *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// Config controls the volume and vocabulary of a generator run.
type Config struct {
	Seed       uint64
	Customers  int
	Products   int
	Orders     int
	OrderItems int // target total, including the one guaranteed item per order
	Vocabulary Vocabulary
}

// DefaultConfig returns the stock fixture volume: 100 customers, products and
// orders, 130 order items and one payment per order, seeded with 42.
func DefaultConfig() Config {
	return Config{
		Seed:       42,
		Customers:  100,
		Products:   100,
		Orders:     100,
		OrderItems: 130,
		Vocabulary: DefaultVocabulary(),
	}
}

// ConfigError describes an unusable generator setting.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("generator config: %s: %s", e.Field, e.Reason)
}

// Windows, in days, used when placing timestamps. orderRecentDays must stay
// below customerNewestDays-1 so a clamped order still follows its customer's
// signup; Validate checks that ordering.
const (
	customerOldestDays = 900
	customerNewestDays = 30
	orderMinOffsetDays = 1
	orderMaxOffsetDays = 360
	orderRecentDays    = 14
	paymentMaxDays     = 7
)

const day = 24 * time.Hour

// Generator produces a Dataset from a seeded source.
type Generator struct {
	cfg Config
	now time.Time
	rng Source
}

// NewGenerator returns a generator whose output depends only on cfg and now.
// now is truncated to whole seconds since timestamps are written that way.
func NewGenerator(cfg Config, now time.Time) *Generator {
	return &Generator{
		cfg: cfg,
		now: now.Truncate(time.Second),
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Generate builds all five record sets in dependency order on one stream.
func (g *Generator) Generate() (*Dataset, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	statuses, err := NewWeighted(g.cfg.Vocabulary.OrderStatuses)
	if err != nil {
		return nil, &ConfigError{Field: "order statuses", Reason: err.Error()}
	}

	ds := &Dataset{}
	ds.Customers = g.GenerateCustomers()
	ds.Products = g.GenerateProducts()
	ds.Orders = g.GenerateOrders(ds.Customers, statuses)
	ds.OrderItems = g.GenerateOrderItems(ds.Orders, ds.Products)
	ds.Payments = g.GeneratePayments(ds.Orders, ds.OrderItems, ds.Products)
	return ds, nil
}

func (g *Generator) validate() error {
	counts := []struct {
		name string
		n    int
	}{
		{"customers", g.cfg.Customers},
		{"products", g.cfg.Products},
		{"orders", g.cfg.Orders},
	}
	for _, c := range counts {
		if c.n <= 0 {
			return &ConfigError{Field: c.name, Reason: fmt.Sprintf("count must be positive, got %d", c.n)}
		}
	}
	if g.cfg.OrderItems < 0 {
		return &ConfigError{Field: "order items", Reason: fmt.Sprintf("count must be non-negative, got %d", g.cfg.OrderItems)}
	}
	return g.cfg.Vocabulary.validate()
}

// GenerateCustomers creates cfg.Customers shoppers with creation times
// between 900 and 30 days before now.
func (g *Generator) GenerateCustomers() []Customer {
	v := g.cfg.Vocabulary
	customers := make([]Customer, 0, g.cfg.Customers)
	for i := 1; i <= g.cfg.Customers; i++ {
		name := pick(g.rng, v.FirstNames) + " " + pick(g.rng, v.LastNames)
		created := g.randomPastTime(customerOldestDays, customerNewestDays)
		customers = append(customers, Customer{
			ID:        formatID(customerPrefix, i),
			FullName:  name,
			Email:     g.email(name),
			City:      pick(g.rng, v.Cities),
			CreatedAt: created,
		})
	}
	return customers
}

// GenerateProducts creates cfg.Products catalog entries priced in [5, 500].
func (g *Generator) GenerateProducts() []Product {
	v := g.cfg.Vocabulary
	products := make([]Product, 0, g.cfg.Products)
	for i := 1; i <= g.cfg.Products; i++ {
		category := pick(g.rng, v.Categories)
		name := pick(g.rng, v.Adjectives) + " " + pick(g.rng, v.ProductNouns)
		products = append(products, Product{
			ID:       formatID(productPrefix, i),
			Name:     name,
			Category: category,
			Price:    g.randomMoney(5, 500),
		})
	}
	return products
}

// GenerateOrders creates cfg.Orders orders, each for a uniformly chosen
// customer and dated 1-360 days after that customer signed up. A date past
// now is replaced by one in the last 14 days.
func (g *Generator) GenerateOrders(customers []Customer, statuses *Weighted[string]) []Order {
	orders := make([]Order, 0, g.cfg.Orders)
	for i := 1; i <= g.cfg.Orders; i++ {
		customer := customers[g.rng.IntN(len(customers))]
		date := customer.CreatedAt.Add(time.Duration(g.randInt(orderMinOffsetDays, orderMaxOffsetDays)) * day)
		if date.After(g.now) {
			date = g.now.Add(-time.Duration(g.randInt(0, orderRecentDays)) * day)
		}
		orders = append(orders, Order{
			ID:         formatID(orderPrefix, i),
			CustomerID: customer.ID,
			OrderDate:  date,
			Status:     statuses.Pick(g.rng),
		})
	}
	return orders
}

// GenerateOrderItems gives every order one item (quantity 1-4), then adds
// items on random order/product pairs (quantity 1-5) until cfg.OrderItems
// is reached. Ids run sequentially across both passes.
func (g *Generator) GenerateOrderItems(orders []Order, products []Product) []OrderItem {
	items := make([]OrderItem, 0, max(len(orders), g.cfg.OrderItems))
	for _, order := range orders {
		product := products[g.rng.IntN(len(products))]
		items = append(items, OrderItem{
			ID:        formatID(itemPrefix, len(items)+1),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  g.randInt(1, 4),
		})
	}
	for len(items) < g.cfg.OrderItems {
		order := orders[g.rng.IntN(len(orders))]
		product := products[g.rng.IntN(len(products))]
		items = append(items, OrderItem{
			ID:        formatID(itemPrefix, len(items)+1),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  g.randInt(1, 5),
		})
	}
	return items
}

// GeneratePayments settles each order once, in order sequence. The amount is
// the order's item total; an order without items gets a random amount in
// [10, 200]. Payment lands 0-7 days after the order.
func (g *Generator) GeneratePayments(orders []Order, items []OrderItem, products []Product) []Payment {
	totals := OrderTotals(items, products)

	payments := make([]Payment, 0, len(orders))
	for i, order := range orders {
		paidAt := order.OrderDate.Add(time.Duration(g.randInt(0, paymentMaxDays)) * day)
		amount := totals[order.ID]
		if amount.IsZero() {
			amount = g.randomMoney(10, 200)
		}
		payments = append(payments, Payment{
			ID:      formatID(paymentPrefix, i+1),
			OrderID: order.ID,
			Amount:  amount,
			Mode:    pick(g.rng, g.cfg.Vocabulary.PaymentModes),
			PaidAt:  paidAt,
		})
	}
	return payments
}

// OrderTotals sums price x quantity per order id. Items whose product is
// unknown contribute nothing.
func OrderTotals(items []OrderItem, products []Product) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			continue
		}
		totals[item.OrderID] = totals[item.OrderID].Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return totals
}

// email derives first.last<n>@domain from a display name.
func (g *Generator) email(name string) string {
	local := strings.ReplaceAll(strings.ToLower(name), " ", ".")
	return fmt.Sprintf("%s%d@%s", local, g.randInt(1, 999), pick(g.rng, g.cfg.Vocabulary.EmailDomains))
}

// randomPastTime picks a whole day between oldest and newest days ago, then
// a random hour and minute on top.
func (g *Generator) randomPastTime(oldestDays, newestDays int) time.Time {
	start := g.now.Add(-time.Duration(oldestDays) * day)
	days := g.randInt(0, oldestDays-newestDays)
	hours := g.randInt(0, 23)
	minutes := g.randInt(0, 59)
	return start.Add(time.Duration(days)*day + time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute)
}

// randInt returns a uniform integer in [lo, hi].
func (g *Generator) randInt(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// randomMoney returns a uniform amount in [lo, hi] rounded to cents.
func (g *Generator) randomMoney(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(lo + g.rng.Float64()*(hi-lo)).Round(2)
}

func pick[T any](r Source, values []T) T {
	return values[r.IntN(len(values))]
}
