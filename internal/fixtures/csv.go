package fixtures

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/shopfixtures/internal/schema"
)

// csvFile pairs a table's file with its header and rendered rows.
type csvFile struct {
	table  string
	header []string
	rows   [][]string
}

// WriteCSV writes the five CSV files into dir, creating it if needed.
// Existing files are overwritten.
func WriteCSV(dir string, ds *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	for _, f := range ds.files() {
		path := filepath.Join(dir, schema.FileName(f.table))
		if err := writeCSVFile(path, f.header, f.rows); err != nil {
			return fmt.Errorf("write %s: %w", schema.FileName(f.table), err)
		}
	}
	return nil
}

// files renders the dataset in load order.
func (ds *Dataset) files() []csvFile {
	return []csvFile{
		{schema.Customers, schema.CustomerColumns, rowsOf(ds.Customers, Customer.row)},
		{schema.Products, schema.ProductColumns, rowsOf(ds.Products, Product.row)},
		{schema.Orders, schema.OrderColumns, rowsOf(ds.Orders, Order.row)},
		{schema.OrderItems, schema.OrderItemColumns, rowsOf(ds.OrderItems, OrderItem.row)},
		{schema.Payments, schema.PaymentColumns, rowsOf(ds.Payments, Payment.row)},
	}
}

func rowsOf[T any](records []T, row func(T) []string) [][]string {
	out := make([][]string, len(records))
	for i, r := range records {
		out[i] = row(r)
	}
	return out
}

func writeCSVFile(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}
