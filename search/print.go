package search

import (
	"bufio"
	"fmt"
	"io"
)

// PreviewLength is the number of characters of chunk text printed per hit.
const PreviewLength = 200

// Print writes results in a human-readable form.
func Print(w io.Writer, r *Results) error {
	bw := bufio.NewWriter(w)
	if r.Query != "" {
		fmt.Fprintf(bw, "\nSearching for: '%s'\n", r.Query)
	}
	if r.Backend.usesFlat() {
		fmt.Fprintln(bw, "\n=== Flat Index Results ===")
		printFlat(bw, r)
	}
	if r.Backend.usesMetadata() {
		fmt.Fprintln(bw, "\n=== Metadata Store Results ===")
		printMetadata(bw, r.Metadata)
	}
	return bw.Flush()
}

func printFlat(w io.Writer, r *Results) {
	if !r.ChunksProvided {
		fmt.Fprintln(w, "(chunks not provided - showing indices only)")
		for i, hit := range r.Flat {
			fmt.Fprintf(w, "Result %d: Index=%d, Distance=%.4f\n", i+1, hit.Ordinal, hit.Distance)
		}
		return
	}
	if len(r.Flat) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	for i, hit := range r.Flat {
		fmt.Fprintf(w, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(w, "Index: %d\n", hit.Ordinal)
		fmt.Fprintf(w, "Distance: %.4f\n", hit.Distance)
		fmt.Fprintf(w, "Text: %s\n", preview(hit.Text))
	}
}

func printMetadata(w io.Writer, hits []Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results found")
		return
	}
	for i, hit := range hits {
		source, ok := hit.Metadata["source"]
		if !ok {
			source = "N/A"
		}
		fmt.Fprintf(w, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(w, "Distance: %.4f\n", hit.Distance)
		fmt.Fprintf(w, "Source: %v\n", source)
		fmt.Fprintf(w, "Text: %s\n", preview(hit.Text))
	}
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLength {
		return text
	}
	return string(runes[:PreviewLength]) + "..."
}
