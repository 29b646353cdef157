package tables

import (
	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
)

func init() {
	registerOrders()
	registerOrderItems()
	registerPayments()
}

func registerOrders() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   schema.Orders,
			Label: "Orders",
			File:  schema.FileName(schema.Orders),
			Rank:  3,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "order_id", Type: core.FieldText, Required: true},
			{Name: "customer_id", Type: core.FieldText, Required: true},
			{Name: "order_date", Type: core.FieldTimestamp, Required: true},
			{Name: "order_status", Type: core.FieldText},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			orderDate, err := timestamp(row, idx, "order_date")
			if err != nil {
				return nil, err
			}
			return OrderParams{
				OrderID:     text(row, idx, "order_id"),
				CustomerID:  text(row, idx, "customer_id"),
				OrderDate:   orderDate,
				OrderStatus: text(row, idx, "order_status"),
			}, nil
		},
		CopyColumns: schema.OrderColumns,
		CopyRow: func(params any) []any {
			p := params.(OrderParams)
			return []any{p.OrderID, p.CustomerID, p.OrderDate, p.OrderStatus}
		},
	})
}

func registerOrderItems() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   schema.OrderItems,
			Label: "Order items",
			File:  schema.FileName(schema.OrderItems),
			Rank:  4,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "item_id", Type: core.FieldText, Required: true},
			{Name: "order_id", Type: core.FieldText, Required: true},
			{Name: "product_id", Type: core.FieldText, Required: true},
			{Name: "quantity", Type: core.FieldInteger, Required: true, Positive: true},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			quantity, err := integer(row, idx, "quantity")
			if err != nil {
				return nil, err
			}
			return OrderItemParams{
				ItemID:    text(row, idx, "item_id"),
				OrderID:   text(row, idx, "order_id"),
				ProductID: text(row, idx, "product_id"),
				Quantity:  quantity,
			}, nil
		},
		CopyColumns: schema.OrderItemColumns,
		CopyRow: func(params any) []any {
			p := params.(OrderItemParams)
			return []any{p.ItemID, p.OrderID, p.ProductID, p.Quantity}
		},
	})
}

func registerPayments() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   schema.Payments,
			Label: "Payments",
			File:  schema.FileName(schema.Payments),
			Rank:  5,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "payment_id", Type: core.FieldText, Required: true},
			{Name: "order_id", Type: core.FieldText, Required: true},
			{Name: "payment_amount", Type: core.FieldNumeric, Required: true},
			{Name: "payment_mode", Type: core.FieldText},
			{Name: "payment_date", Type: core.FieldTimestamp, Required: true},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			amount, err := numeric(row, idx, "payment_amount")
			if err != nil {
				return nil, err
			}
			paymentDate, err := timestamp(row, idx, "payment_date")
			if err != nil {
				return nil, err
			}
			return PaymentParams{
				PaymentID:     text(row, idx, "payment_id"),
				OrderID:       text(row, idx, "order_id"),
				PaymentAmount: amount,
				PaymentMode:   text(row, idx, "payment_mode"),
				PaymentDate:   paymentDate,
			}, nil
		},
		CopyColumns: schema.PaymentColumns,
		CopyRow: func(params any) []any {
			p := params.(PaymentParams)
			return []any{p.PaymentID, p.OrderID, p.PaymentAmount, p.PaymentMode, p.PaymentDate}
		},
	})
}
