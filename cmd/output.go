package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIDs(w io.Writer, kind string, ids []string) error {
	if outputFormat == "json" {
		return printJSON(w, ids)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", kind)
	for _, id := range ids {
		fmt.Fprintf(tw, "%s\n", id)
	}
	return tw.Flush()
}

// printSerialized prints a serialized JSON document, indented when it parses.
func printSerialized(w io.Writer, doc string) error {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		_, err := fmt.Fprintln(w, doc)
		return err
	}
	return printJSON(w, v)
}
