// Command benchmark_parser turns `go test -bench` output into a markdown
// report.
//
// Usage:
//
//	go test -bench=. -benchmem ./... | go run scripts/benchmark_parser.go -output BENCHMARKS.md
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Package     string
	Iterations  int
	NsPerOp     float64
	MBPerSec    float64
	BytesPerOp  int64
	AllocsPerOp int64
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	report := generateMarkdownReport(results)

	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkExtract-8    5000    235163 ns/op    1114.80 MB/s    270336 B/op    6 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+MB/s)?(?:\s+(\d+)\s+B/op)?(?:\s+(\d+)\s+allocs/op)?`,
	)

	pkg := ""
	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}
		line = strings.TrimSpace(line)

		// Track which package the following lines belong to
		if rest, ok := strings.CutPrefix(line, "pkg: "); ok {
			pkg = rest
			continue
		}

		matches := benchmarkRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		r := BenchmarkResult{Name: trimProcSuffix(matches[1]), Package: pkg}
		r.Iterations, _ = strconv.Atoi(matches[2])
		r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
		if matches[4] != "" {
			r.MBPerSec, _ = strconv.ParseFloat(matches[4], 64)
		}
		if matches[5] != "" {
			r.BytesPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}
		if matches[6] != "" {
			r.AllocsPerOp, _ = strconv.ParseInt(matches[6], 10, 64)
		}
		results = append(results, r)
	}

	return results
}

// trimProcSuffix strips the trailing GOMAXPROCS marker: BenchmarkExtract-8
// becomes BenchmarkExtract.
func trimProcSuffix(name string) string {
	if i := strings.LastIndex(name, "-"); i > 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			return name[:i]
		}
	}
	return name
}

func generateMarkdownReport(results []BenchmarkResult) string {
	var b strings.Builder
	b.WriteString("# Benchmark Report\n\n")

	if len(results) == 0 {
		b.WriteString("No benchmark results found.\n")
		return b.String()
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Package != results[j].Package {
			return results[i].Package < results[j].Package
		}
		return results[i].Name < results[j].Name
	})

	b.WriteString("| Package | Benchmark | ns/op | MB/s | B/op | allocs/op |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|\n")
	for _, r := range results {
		mbs := "-"
		if r.MBPerSec > 0 {
			mbs = fmt.Sprintf("%.1f", r.MBPerSec)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %d |\n",
			shortPackage(r.Package),
			strings.TrimPrefix(r.Name, "Benchmark"),
			formatNs(r.NsPerOp),
			mbs,
			r.BytesPerOp,
			r.AllocsPerOp)
	}

	return b.String()
}

func shortPackage(pkg string) string {
	if pkg == "" {
		return "-"
	}
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}

func formatNs(ns float64) string {
	switch {
	case ns >= 1e9:
		return fmt.Sprintf("%.2fs", ns/1e9)
	case ns >= 1e6:
		return fmt.Sprintf("%.2fms", ns/1e6)
	case ns >= 1e3:
		return fmt.Sprintf("%.1fµs", ns/1e3)
	default:
		return fmt.Sprintf("%.0fns", ns)
	}
}
