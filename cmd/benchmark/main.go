package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	pdftables "github.com/pyhub-apps/pdftables-golang"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: benchmark <pdf-file>")
		os.Exit(1)
	}

	pdfPath := os.Args[1]
	settings := pdftables.DefaultSettings()

	// Benchmark PDF opening
	start := time.Now()
	doc, err := pdftables.Open(pdfPath)
	if err != nil {
		log.Fatalf("Failed to open PDF: %v", err)
	}
	defer doc.Close()
	openTime := time.Since(start)

	fmt.Printf("=== pdftables Benchmark ===\n")
	fmt.Printf("File: %s\n", pdfPath)
	fmt.Printf("Pages: %d\n", doc.PageCount())
	fmt.Printf("Open time: %v\n", openTime)

	// Benchmark object decoding
	var totalObjects int
	start = time.Now()
	for _, page := range doc.GetPages() {
		objects, err := page.GetObjects()
		if err != nil {
			continue
		}
		totalObjects += objects.Len()
	}
	objectTime := time.Since(start)

	fmt.Printf("Object decoding time: %v\n", objectTime)
	fmt.Printf("Total objects: %d\n", totalObjects)
	fmt.Printf("Objects/sec: %.0f obj/sec\n", float64(totalObjects)/objectTime.Seconds())

	// Benchmark sequential detection; objects are cached by now
	var sequentialTables int
	start = time.Now()
	for _, page := range doc.GetPages() {
		tables, err := pdftables.FindTables(page, settings)
		if err != nil {
			continue
		}
		sequentialTables += len(tables)
	}
	sequentialTime := time.Since(start)

	fmt.Printf("Sequential detection time: %v\n", sequentialTime)
	fmt.Printf("Total tables found: %d\n", sequentialTables)

	// Benchmark concurrent detection
	start = time.Now()
	result, err := pdftables.ExtractTables(context.Background(), doc, settings)
	if err != nil {
		log.Fatalf("Failed to extract tables: %v", err)
	}
	concurrentTime := time.Since(start)

	fmt.Printf("Concurrent detection time: %v\n", concurrentTime)
	fmt.Printf("Total tables found: %d\n", len(result.Tables))

	// Summary
	totalTime := openTime + objectTime + concurrentTime
	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Total processing time: %v\n", totalTime)
	fmt.Printf("Pages/sec: %.2f\n", float64(doc.PageCount())/totalTime.Seconds())
	if concurrentTime > 0 {
		fmt.Printf("Speedup: %.2fx\n", sequentialTime.Seconds()/concurrentTime.Seconds())
	}
}
