package tables

import (
	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
)

func init() {
	registerCustomers()
	registerProducts()
}

func registerCustomers() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   schema.Customers,
			Label: "Customers",
			File:  schema.FileName(schema.Customers),
			Rank:  1,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "customer_id", Type: core.FieldText, Required: true},
			{Name: "full_name", Type: core.FieldText, Required: true},
			{Name: "email", Type: core.FieldText, Required: true},
			{Name: "city", Type: core.FieldText},
			{Name: "created_at", Type: core.FieldTimestamp},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			createdAt, err := timestamp(row, idx, "created_at")
			if err != nil {
				return nil, err
			}
			return CustomerParams{
				CustomerID: text(row, idx, "customer_id"),
				FullName:   text(row, idx, "full_name"),
				Email:      text(row, idx, "email"),
				City:       text(row, idx, "city"),
				CreatedAt:  createdAt,
			}, nil
		},
		CopyColumns: schema.CustomerColumns,
		CopyRow: func(params any) []any {
			p := params.(CustomerParams)
			return []any{p.CustomerID, p.FullName, p.Email, p.City, p.CreatedAt}
		},
	})
}

func registerProducts() {
	core.Register(core.TableDefinition{
		Info: core.TableInfo{
			Key:   schema.Products,
			Label: "Products",
			File:  schema.FileName(schema.Products),
			Rank:  2,
		},
		FieldSpecs: []core.FieldSpec{
			{Name: "product_id", Type: core.FieldText, Required: true},
			{Name: "product_name", Type: core.FieldText, Required: true},
			{Name: "category", Type: core.FieldText},
			{Name: "price", Type: core.FieldNumeric, Required: true, Positive: true},
		},
		BuildParams: func(row []string, idx core.HeaderIndex) (any, error) {
			price, err := numeric(row, idx, "price")
			if err != nil {
				return nil, err
			}
			return ProductParams{
				ProductID:   text(row, idx, "product_id"),
				ProductName: text(row, idx, "product_name"),
				Category:    text(row, idx, "category"),
				Price:       price,
			}, nil
		},
		CopyColumns: schema.ProductColumns,
		CopyRow: func(params any) []any {
			p := params.(ProductParams)
			return []any{p.ProductID, p.ProductName, p.Category, p.Price}
		},
	})
}
