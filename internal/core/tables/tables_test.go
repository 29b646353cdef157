package tables_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/shopfixtures/internal/core"
	"github.com/JonMunkholm/shopfixtures/internal/core/tables"
	"github.com/JonMunkholm/shopfixtures/internal/fixtures"
	"github.com/JonMunkholm/shopfixtures/internal/schema"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T) (string, *fixtures.Dataset) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	ds, err := fixtures.NewGenerator(fixtures.DefaultConfig(), now).Generate()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, fixtures.WriteCSV(dir, ds))
	return dir, ds
}

func TestRegistry_LoadOrder(t *testing.T) {
	var keys []string
	for _, def := range core.LoadOrder() {
		keys = append(keys, def.Info.Key)
	}
	assert.Equal(t, []string{
		schema.Customers, schema.Products, schema.Orders, schema.OrderItems, schema.Payments,
	}, keys)

	var reset []string
	for _, def := range core.ResetOrder() {
		reset = append(reset, def.Info.Key)
	}
	assert.Equal(t, []string{
		schema.Payments, schema.OrderItems, schema.Orders, schema.Products, schema.Customers,
	}, reset)
	assert.Equal(t, 5, core.RegisteredTables())
}

func TestRegistry_ColumnsMatchSchema(t *testing.T) {
	for _, def := range core.LoadOrder() {
		t.Run(def.Info.Key, func(t *testing.T) {
			assert.Equal(t, def.CopyColumns, def.Info.Columns)
			assert.Equal(t, def.Info.Key+".csv", def.Info.File)
		})
	}
}

func TestReadGeneratedDataset(t *testing.T) {
	dir, ds := writeDataset(t)

	want := map[string]int{
		schema.Customers:  len(ds.Customers),
		schema.Products:   len(ds.Products),
		schema.Orders:     len(ds.Orders),
		schema.OrderItems: len(ds.OrderItems),
		schema.Payments:   len(ds.Payments),
	}

	for _, def := range core.LoadOrder() {
		t.Run(def.Info.Key, func(t *testing.T) {
			parsed, err := core.ReadTableFile(dir, def)
			require.NoError(t, err)
			assert.Len(t, parsed.Params, want[def.Info.Key])

			for _, row := range parsed.CopyRows() {
				require.Len(t, row, len(def.CopyColumns))
			}
		})
	}
}

func TestBuildParams_Product(t *testing.T) {
	dir, ds := writeDataset(t)
	def, ok := core.Get(schema.Products)
	require.True(t, ok)

	parsed, err := core.ReadTableFile(dir, def)
	require.NoError(t, err)

	first := parsed.Params[0].(tables.ProductParams)
	assert.Equal(t, ds.Products[0].ID, first.ProductID.String)
	assert.Equal(t, ds.Products[0].Name, first.ProductName.String)

	price, ok := core.NumericToDecimal(first.Price)
	require.True(t, ok)
	assert.True(t, price.Equal(ds.Products[0].Price), "price %s != %s", price, ds.Products[0].Price)
}

func TestBuildParams_Payment(t *testing.T) {
	dir := t.TempDir()
	content := "payment_id,order_id,payment_amount,payment_mode,payment_date\n" +
		"PAY0001,ORD0001,105.00,Credit Card,2025-05-24 12:30:45\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payments.csv"), []byte(content), 0o644))

	def, ok := core.Get(schema.Payments)
	require.True(t, ok)
	parsed, err := core.ReadTableFile(dir, def)
	require.NoError(t, err)
	require.Len(t, parsed.Params, 1)

	p := parsed.Params[0].(tables.PaymentParams)
	amount, ok := core.NumericToDecimal(p.PaymentAmount)
	require.True(t, ok)
	assert.True(t, amount.Equal(decimal.RequireFromString("105")))
	assert.Equal(t, "Credit Card", p.PaymentMode.String)
	assert.Equal(t, pgtype.Timestamp{Time: time.Date(2025, 5, 24, 12, 30, 45, 0, time.UTC), Valid: true}, p.PaymentDate)
}

func TestReadTableFile_MalformedNumeric(t *testing.T) {
	dir := t.TempDir()
	content := "product_id,product_name,category,price\n" +
		"PROD0001,Smart Phone,Electronics,12.50\n" +
		"PROD0002,Eco Lamp,Home,abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "products.csv"), []byte(content), 0o644))

	def, ok := core.Get(schema.Products)
	require.True(t, ok)

	_, err := core.ReadTableFile(dir, def)
	require.Error(t, err)

	var rowErr *core.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, "price", rowErr.Column)
	assert.Equal(t, "VAL002", core.MapError(err).Code)
}

func TestReadTableFile_NonPositiveQuantity(t *testing.T) {
	dir := t.TempDir()
	content := "item_id,order_id,product_id,quantity\n" +
		"ITEM0001,ORD0001,PROD0001,0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_items.csv"), []byte(content), 0o644))

	def, ok := core.Get(schema.OrderItems)
	require.True(t, ok)

	_, err := core.ReadTableFile(dir, def)
	var rowErr *core.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, "quantity", rowErr.Column)
}
