// Package tableio moves frame.Table values in and out of CSV and Excel
// workbooks.
//
// Readers take the first row as the header and infer each column's kind: a
// column is numeric when every non-blank cell parses as a number, text
// otherwise. In numeric columns blank cells and the usual missing tokens
// (NA, N/A, NaN, null) become NaN. Writers render NaN as an empty cell, so a
// cleaned table round-trips through either format.
//
//	tbl, err := tableio.ReadFile(ctx, "winequality.csv", tableio.ReadOptions{})
//	...
//	err = tableio.WriteFile(ctx, "winequality-clean.xlsx", cleaned)
package tableio
