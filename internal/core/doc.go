// Package core provides the loader that moves fixture CSV files into PostgreSQL.
//
// The package is independent of any transport layer. The ingest command, the
// HTTP server and the tests all drive it through [Service].
//
// # Table Registry
//
// Tables are registered at init time using [Register]. Each [TableDefinition]
// carries everything needed to read one CSV file and copy it into the store:
//
//	core.Register(core.TableDefinition{
//	    Info: core.TableInfo{Key: "customers", Label: "Customers", Rank: 1},
//	    FieldSpecs: []core.FieldSpec{
//	        {Name: "customer_id", Type: core.FieldText, Required: true},
//	        {Name: "created_at", Type: core.FieldTimestamp, Required: true},
//	    },
//	    BuildParams: buildCustomerParams,
//	    CopyRow:     customerCopyRow,
//	})
//
// Rank orders the tables by dependency. [LoadOrder] returns parents first and
// [ResetOrder] returns children first.
//
// # Loading
//
// [Service.Load] reads and validates every file before it opens a
// transaction. Inside the transaction it applies the schema, deletes existing
// rows in reset order, copies the parsed rows in load order with COPY, records
// the load in fixture_loads and commits. Any failure rolls the whole load back.
//
// # Error Handling
//
// Technical errors are mapped to coded messages using [MapError]:
//
//   - SRC001-SRC003: Source directory and file errors
//   - VAL001-VAL003: Cell validation errors
//   - DB001-DB006: Database errors (duplicates, foreign keys, connections)
//   - RPT001-RPT003: Reporter errors (query file, missing store)
package core
