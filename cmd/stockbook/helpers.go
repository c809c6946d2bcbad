package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// printRows renders rows as a column-aligned table, or JSON with --json.
func printRows(rows []types.Row) error {
	if flagJSON {
		maps := make([]map[string]any, len(rows))
		for i, r := range rows {
			maps[i] = r.Map()
		}
		return printJSON(maps)
	}
	if len(rows) == 0 {
		fmt.Println("no rows")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	cols := rows[0].Columns()
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
	for _, r := range rows {
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, r.String(c))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
