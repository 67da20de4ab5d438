package extract_test

import (
	"fmt"

	"github.com/devsahil2063/Email-Verifier/extract"
)

func ExampleDetectEmailColumns() {
	table := extract.Table{
		Header: []string{"Name", "Work Email", "Phone"},
		Rows: [][]string{
			{"Alice", "alice@example.com", "555-0100"},
		},
	}

	for _, col := range extract.DetectEmailColumns(table) {
		fmt.Println(table.Header[col])
	}
	// Output: Work Email
}

func ExampleAddresses() {
	table := extract.Table{
		Header: []string{"Email"},
		Rows: [][]string{
			{"alice@example.com"},
			{"not-an-email"},
			{"bob@example.com"},
		},
	}

	for _, c := range extract.Addresses(table, 0) {
		fmt.Printf("row %d: %s\n", c.Row, c.Address)
	}
	// Output:
	// row 0: alice@example.com
	// row 2: bob@example.com
}
