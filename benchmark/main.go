// Package main provides a performance benchmarking tool for the rebuy CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - rebuy binary installed and available in PATH
// - A writable work directory for the generated datasets
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic datasets are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-snapshot average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset        string
	Command        string
	NoSnapshotTime string
	ColdTime       string
	WarmTime       string
}

// DatasetSpec describes one synthetic dataset to benchmark against.
type DatasetSpec struct {
	Name      string
	Customers int
	Products  int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Timeout        time.Duration
	NoSnapshotRuns int
	SnapshotRuns   int
	Datasets       []DatasetSpec
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:        workDir,
		Timeout:        2 * time.Minute,
		NoSnapshotRuns: 3,
		SnapshotRuns:   4,
		Datasets: []DatasetSpec{
			{Name: "small", Customers: 1_000, Products: 5},
			{Name: "medium", Customers: 25_000, Products: 20},
			{Name: "large", Customers: 250_000, Products: 50},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the rebuy binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("rebuy"); err != nil {
		return fmt.Errorf("rebuy binary not found in PATH")
	}

	if _, err := os.Stat(config.WorkDir); os.IsNotExist(err) {
		return fmt.Errorf("work directory not found at %s", config.WorkDir)
	}

	return nil
}

// generateDatasets creates the synthetic transaction files used by the suite
func generateDatasets(config BenchmarkConfig) error {
	for _, ds := range config.Datasets {
		path := datasetPath(config, ds)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Reusing existing dataset %s\n", path)
			continue
		}

		fmt.Printf("Generating dataset %s (%d customers, %d products)\n", ds.Name, ds.Customers, ds.Products)
		cmd := exec.Command("rebuy", "gen", path,
			"--customers", fmt.Sprintf("%d", ds.Customers),
			"--products", fmt.Sprintf("%d", ds.Products),
			"--seed", "42")
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to generate %s: %v\nOutput: %s", ds.Name, err, string(output))
		}
	}
	return nil
}

func datasetPath(config BenchmarkConfig, ds DatasetSpec) string {
	return filepath.Join(config.WorkDir, fmt.Sprintf("rebuy_bench_%s.csv", ds.Name))
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-snapshot: %d runs, snapshot: %d runs\n",
		len(config.Datasets), config.Timeout, config.NoSnapshotRuns, config.SnapshotRuns)

	for _, ds := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", ds.Name)

		dataPath := datasetPath(config, ds)

		// Benchmark resolution
		result := runBenchmarkSuite(config, ds.Name, dataPath, "benchmarks", "benchmark resolution", "")
		results = append(results, result)

		// Full status computation
		result = runBenchmarkSuite(config, ds.Name, dataPath, "all", "status computation", "--limit 0")
		results = append(results, result)

		// Cross-product comparison
		result = runBenchmarkSuite(config, ds.Name, dataPath, "compare", "product comparison", "")
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-snapshot and snapshot benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(snapshotBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, command, extraArgs, snapshotBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-snapshot runs
	_, noSnapshotAvg := runPhase("none", config.NoSnapshotRuns, "No-snapshot")

	// Phase 2: Snapshot runs
	coldTime, warmAvg := runPhase("sqlite", config.SnapshotRuns, "Snapshot")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-snapshot average: %s, Cold time: %s, Warm average: %s\n", noSnapshotAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:        dataset,
		Command:        command,
		NoSnapshotTime: noSnapshotAvg,
		ColdTime:       coldTimeStr,
		WarmTime:       warmAvg,
	}
}

// runBenchmark executes a rebuy command multiple times with the specified snapshot backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataPath, command, extraArgs, snapshotBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, dataPath, "--snapshot-backend", snapshotBackend}
	if snapshotBackend == "sqlite" {
		args = append(args, "--snapshot-db-connect", filepath.Join(config.WorkDir, "rebuy_bench_snapshots.db"))
	}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("rebuy", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	switch command {
	case "benchmarks":
		return strings.Contains(outputStr, "Resolved")
	case "compare":
		return strings.Contains(outputStr, "Comparing") &&
			strings.Contains(outputStr, "computed in")
	default:
		return strings.Contains(outputStr, "ASOF =") &&
			strings.Contains(outputStr, "computed in")
	}
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/rebuy_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_snapshot_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoSnapshotTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "benchmarks", "Benchmark Resolution:")
	printCommandSummary(results, "all", "Status Computation:")
	printCommandSummary(results, "compare", "Product Comparison:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-snapshot: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoSnapshotTime, result.ColdTime, result.WarmTime)
		}
	}
}
