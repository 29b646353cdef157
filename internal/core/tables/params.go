package tables

import (
	"fmt"

	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/jackc/pgx/v5/pgtype"
)

// CustomerParams is one customers row ready for COPY.
type CustomerParams struct {
	CustomerID pgtype.Text
	FullName   pgtype.Text
	Email      pgtype.Text
	City       pgtype.Text
	CreatedAt  pgtype.Timestamp
}

// ProductParams is one products row ready for COPY.
type ProductParams struct {
	ProductID   pgtype.Text
	ProductName pgtype.Text
	Category    pgtype.Text
	Price       pgtype.Numeric
}

// OrderParams is one orders row ready for COPY.
type OrderParams struct {
	OrderID     pgtype.Text
	CustomerID  pgtype.Text
	OrderDate   pgtype.Timestamp
	OrderStatus pgtype.Text
}

// OrderItemParams is one order_items row ready for COPY.
type OrderItemParams struct {
	ItemID    pgtype.Text
	OrderID   pgtype.Text
	ProductID pgtype.Text
	Quantity  int32
}

// PaymentParams is one payments row ready for COPY.
type PaymentParams struct {
	PaymentID     pgtype.Text
	OrderID       pgtype.Text
	PaymentAmount pgtype.Numeric
	PaymentMode   pgtype.Text
	PaymentDate   pgtype.Timestamp
}

func getCell(row []string, idx core.HeaderIndex, name string) string {
	return core.Cell(row, idx, name)
}

func text(row []string, idx core.HeaderIndex, name string) pgtype.Text {
	return core.ToPgText(getCell(row, idx, name))
}

func numeric(row []string, idx core.HeaderIndex, name string) (pgtype.Numeric, error) {
	d, err := core.ParseDecimal(getCell(row, idx, name))
	if err != nil {
		return pgtype.Numeric{}, fmt.Errorf("%s: %w", name, err)
	}
	return core.ToPgNumeric(d), nil
}

func integer(row []string, idx core.HeaderIndex, name string) (int32, error) {
	i, err := core.ParseInt32(getCell(row, idx, name))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return i, nil
}

// timestamp returns an invalid value for an empty optional cell.
func timestamp(row []string, idx core.HeaderIndex, name string) (pgtype.Timestamp, error) {
	raw := getCell(row, idx, name)
	if raw == "" {
		return pgtype.Timestamp{}, nil
	}
	t, err := core.ParseTimestamp(raw)
	if err != nil {
		return pgtype.Timestamp{}, fmt.Errorf("%s: %w", name, err)
	}
	return core.ToPgTimestamp(t), nil
}
