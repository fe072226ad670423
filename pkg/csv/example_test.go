package csv_test

import (
	"errors"
	"fmt"

	"github.com/shapestone/csv-ingest/pkg/csv"
)

func ExampleParse() {
	table, err := csv.Parse("name,age\n\"Smith, Alice\",30\n\n , \nBob,25\n")
	if err != nil {
		panic(err)
	}
	for _, row := range table {
		fmt.Println(len(row), row[0])
	}
	// Output:
	// 2 name
	// 2 Smith, Alice
	// 2 Bob
}

func ExampleParseToKeyedRows() {
	rows, err := csv.ParseToKeyedRows("key,en,es\napp_name,Hello,Hola\n")
	if err != nil {
		panic(err)
	}
	fmt.Println(rows[0]["key"], rows[0]["es"])
	// Output: app_name Hola
}

func ExampleParseWithValidation() {
	_, err := csv.ParseWithValidation("a,b,c\n1,2,3\n4,5\n")

	var cce *csv.ColumnCountError
	if errors.As(err, &cce) {
		fmt.Println(cce.Row, cce.Expected, cce.Actual)
	}
	fmt.Println(err)
	// Output:
	// 3 3 2
	// inconsistent column count: row 3 has 2 fields, expected 3
}
