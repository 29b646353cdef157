package fixtures

import (
	"errors"
	"fmt"
)

// maxIssues caps how many integrity problems Validate reports.
const maxIssues = 20

// IntegrityError lists the referential problems found in a dataset.
type IntegrityError struct {
	Issues []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("dataset integrity: %d issue(s), first: %s", len(e.Issues), e.Issues[0])
}

// Validate checks what the database will enforce plus the invariants only
// the generator knows about:
//   - ids are unique per entity
//   - every order, item and payment references an existing parent
//   - every order has at least one item and exactly one payment
//   - orders follow their customer's creation; payments land 0-7 days after the order
//   - a payment equals its order's item total unless that total is zero
func Validate(ds *Dataset) error {
	if ds == nil {
		return errors.New("dataset integrity: nil dataset")
	}

	var issues []string
	add := func(format string, args ...any) {
		if len(issues) < maxIssues {
			issues = append(issues, fmt.Sprintf(format, args...))
		}
	}

	customers := make(map[string]Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		if _, dup := customers[c.ID]; dup {
			add("duplicate customer id %s", c.ID)
		}
		customers[c.ID] = c
	}

	products := make(map[string]struct{}, len(ds.Products))
	for _, p := range ds.Products {
		if _, dup := products[p.ID]; dup {
			add("duplicate product id %s", p.ID)
		}
		products[p.ID] = struct{}{}
	}

	orders := make(map[string]Order, len(ds.Orders))
	for _, o := range ds.Orders {
		if _, dup := orders[o.ID]; dup {
			add("duplicate order id %s", o.ID)
		}
		orders[o.ID] = o
		c, ok := customers[o.CustomerID]
		if !ok {
			add("order %s references unknown customer %s", o.ID, o.CustomerID)
			continue
		}
		if !o.OrderDate.After(c.CreatedAt) {
			add("order %s dated %s, not after customer %s created %s",
				o.ID, formatTime(o.OrderDate), c.ID, formatTime(c.CreatedAt))
		}
	}

	itemCount := make(map[string]int, len(ds.Orders))
	itemIDs := make(map[string]struct{}, len(ds.OrderItems))
	for _, it := range ds.OrderItems {
		if _, dup := itemIDs[it.ID]; dup {
			add("duplicate item id %s", it.ID)
		}
		itemIDs[it.ID] = struct{}{}
		if _, ok := orders[it.OrderID]; !ok {
			add("item %s references unknown order %s", it.ID, it.OrderID)
		}
		if _, ok := products[it.ProductID]; !ok {
			add("item %s references unknown product %s", it.ID, it.ProductID)
		}
		if it.Quantity <= 0 {
			add("item %s has non-positive quantity %d", it.ID, it.Quantity)
		}
		itemCount[it.OrderID]++
	}

	for _, o := range ds.Orders {
		if itemCount[o.ID] == 0 {
			add("order %s has no items", o.ID)
		}
	}

	totals := OrderTotals(ds.OrderItems, ds.Products)
	paid := make(map[string]int, len(ds.Orders))
	for _, p := range ds.Payments {
		o, ok := orders[p.OrderID]
		if !ok {
			add("payment %s references unknown order %s", p.ID, p.OrderID)
			continue
		}
		paid[p.OrderID]++
		if p.PaidAt.Before(o.OrderDate) || p.PaidAt.After(o.OrderDate.Add(paymentMaxDays*day)) {
			add("payment %s dated %s outside 0-%d days of order %s", p.ID, formatTime(p.PaidAt), paymentMaxDays, o.ID)
		}
		if total := totals[o.ID]; !total.IsZero() && !total.Equal(p.Amount) {
			add("payment %s amount %s does not match order %s total %s",
				p.ID, formatMoney(p.Amount), o.ID, formatMoney(total))
		}
	}
	for _, o := range ds.Orders {
		if paid[o.ID] != 1 {
			add("order %s has %d payments, want 1", o.ID, paid[o.ID])
		}
	}

	if len(issues) > 0 {
		return &IntegrityError{Issues: issues}
	}
	return nil
}
