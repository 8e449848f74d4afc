package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v2"

	pdftables "github.com/pyhub-apps/pdftables-golang"
	"github.com/pyhub-apps/pdftables-golang/internal/logging"
	"github.com/pyhub-apps/pdftables-golang/pkg/page"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "debug_tables: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	strategy   string
	format     string
	verbose    bool
	objects    bool
	fallback   bool
	columns    string
	rows       string
	maxEdges   int
	crop       string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("debug_tables", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: debug_tables [flags] <pdf_file>")
		fs.PrintDefaults()
	}

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML settings file")
	fs.StringVar(&opts.strategy, "strategy", "", "lines, lines_strict, text or explicit (overrides config)")
	fs.StringVar(&opts.format, "format", "text", "output format: text, markdown or json")
	fs.BoolVar(&opts.verbose, "v", false, "log detection diagnostics to stderr")
	fs.BoolVar(&opts.objects, "objects", false, "also print the decoded lines and rectangles of each page")
	fs.BoolVar(&opts.fallback, "fallback", false, "retry pages without ruled cells with the text strategy")
	fs.StringVar(&opts.columns, "columns", "", "comma-separated x coordinates for the explicit strategy")
	fs.StringVar(&opts.rows, "rows", "", "comma-separated y coordinates for the explicit strategy")
	fs.IntVar(&opts.maxEdges, "max-edges", 0, "per-page edge ceiling (overrides config)")
	fs.StringVar(&opts.crop, "crop", "", "restrict detection to x0,top,x1,bottom on every page")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected exactly one PDF file")
	}

	if opts.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	settings, err := buildSettings(opts)
	if err != nil {
		return err
	}

	crop, err := parseCrop(opts.crop)
	if err != nil {
		return err
	}

	opened, err := pdftables.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer opened.Close()

	var doc pdftables.Document = opened
	if crop != nil {
		if doc, err = page.CropDocument(opened, *crop); err != nil {
			return err
		}
	}

	if opts.objects {
		printObjects(stdout, doc)
	}

	result, err := pdftables.ExtractTables(ctx, doc, settings)
	if err != nil {
		return err
	}

	switch opts.format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "markdown", "md":
		for _, t := range result.Tables {
			fmt.Fprintf(stdout, "<!-- page %d -->\n%s\n", t.PageNumber, t.Markdown)
		}
		return nil
	case "text":
		printResult(stdout, result)
		return nil
	default:
		return fmt.Errorf("unknown format %q", opts.format)
	}
}

// buildSettings layers the config file over the defaults and the flags over both
func buildSettings(opts options) (pdftables.Settings, error) {
	settings := pdftables.DefaultSettings()
	if opts.configPath != "" {
		data, err := os.ReadFile(opts.configPath)
		if err != nil {
			return settings, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse config %s: %w", opts.configPath, err)
		}
	}

	if opts.strategy != "" {
		strategy, err := pdftables.ParseStrategy(opts.strategy)
		if err != nil {
			return settings, err
		}
		settings.Strategy = strategy
	}
	if opts.fallback {
		settings.TextFallback = true
	}
	if opts.maxEdges > 0 {
		settings.MaxEdges = opts.maxEdges
	}
	if opts.columns != "" || opts.rows != "" {
		xs, err := parseCoordinates(opts.columns)
		if err != nil {
			return settings, fmt.Errorf("invalid -columns: %w", err)
		}
		ys, err := parseCoordinates(opts.rows)
		if err != nil {
			return settings, fmt.Errorf("invalid -rows: %w", err)
		}
		pdftables.WithExplicitLines(xs, ys)(&settings)
	}

	return settings, settings.Validate()
}

func parseCoordinates(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []float64
	for _, field := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseCrop reads a crop box in x0,top,x1,bottom order; an empty string
// means no crop
func parseCrop(s string) (*pdftables.BoundingBox, error) {
	coords, err := parseCoordinates(s)
	if err != nil {
		return nil, fmt.Errorf("invalid -crop: %w", err)
	}
	if coords == nil {
		return nil, nil
	}
	if len(coords) != 4 {
		return nil, fmt.Errorf("invalid -crop: expected 4 coordinates, got %d", len(coords))
	}
	return &pdftables.BoundingBox{X0: coords[0], Top: coords[1], X1: coords[2], Bottom: coords[3]}, nil
}

func printObjects(w io.Writer, doc pdftables.Document) {
	for _, pg := range doc.GetPages() {
		fmt.Fprintf(w, "=== Page %d (%.2f x %.2f) ===\n", pg.GetPageNumber(), pg.GetWidth(), pg.GetHeight())
		objects, err := pg.GetObjects()
		if err != nil {
			fmt.Fprintf(w, "  failed to decode: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "  Characters: %d\n  Lines: %d\n  Rectangles: %d\n  Curves: %d\n",
			len(objects.Chars), len(objects.Lines), len(objects.Rects), len(objects.Curves))
		for i, line := range objects.Lines {
			fmt.Fprintf(w, "  Line %d: (%.2f, %.2f) to (%.2f, %.2f) width=%.2f\n",
				i+1, line.X0, line.Y0, line.X1, line.Y1, line.Width)
		}
		for i, rect := range objects.Rects {
			fmt.Fprintf(w, "  Rect %d: (%.2f, %.2f) to (%.2f, %.2f) filled=%v\n",
				i+1, rect.X0, rect.Y0, rect.X1, rect.Y1, rect.NonStroking)
		}
		fmt.Fprintln(w)
	}
}

func printResult(w io.Writer, result pdftables.ExtractionResult) {
	fmt.Fprintf(w, "Document has %d pages, %d table(s)\n", result.PageCount, len(result.Tables))
	if len(result.SkippedPages) > 0 {
		fmt.Fprintf(w, "Skipped pages: %v\n", result.SkippedPages)
	}

	for i, table := range result.Tables {
		fmt.Fprintf(w, "\nTable %d (page %d):\n", i+1, table.PageNumber)
		fmt.Fprintf(w, "    Dimensions: %d rows x %d columns\n", table.NumRows(), table.NumCols())
		fmt.Fprintf(w, "    BBox: (%.2f, %.2f) to (%.2f, %.2f)\n",
			table.BBox.X0, table.BBox.Top, table.BBox.X1, table.BBox.Bottom)
		printTable(w, table)
	}
}

// maxCellWidth caps a column's display width for readability
const maxCellWidth = 30

// printTable prints a table as a boxed grid
func printTable(w io.Writer, table pdftables.Table) {
	if table.NumRows() == 0 {
		return
	}

	colWidths := make([]int, table.NumCols())
	for i := range colWidths {
		colWidths[i] = 3
	}
	for _, row := range table.Cells {
		for j, cell := range row {
			colWidths[j] = min(max(colWidths[j], runewidth.StringWidth(flatten(cell))), maxCellWidth)
		}
	}

	printSeparator(w, colWidths)
	for i, row := range table.Cells {
		fmt.Fprint(w, "    |")
		for j, cell := range row {
			text := runewidth.Truncate(flatten(cell), colWidths[j], "...")
			fmt.Fprintf(w, " %s |", runewidth.FillRight(text, colWidths[j]))
		}
		fmt.Fprintln(w)

		// Separator after header (first row)
		if i == 0 {
			printSeparator(w, colWidths)
		}
	}
	printSeparator(w, colWidths)
}

func flatten(cell string) string {
	return strings.ReplaceAll(strings.TrimSpace(cell), "\n", " ")
}

// printSeparator prints a table separator line
func printSeparator(w io.Writer, colWidths []int) {
	fmt.Fprint(w, "    +")
	for _, width := range colWidths {
		fmt.Fprint(w, strings.Repeat("-", width+2)+"+")
	}
	fmt.Fprintln(w)
}
