package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	metricID        = "emails-sent"
	loadDays        = 3  // days of hourly updates sent by the load phase
	updatesPerHour  = 10 // updates per hour, each with count 1
	usersPerHour    = 2  // updates per hour are spread round-robin over this many users
	itemsPerRequest = 40 // updates per POST /metric-updates array
)

// ### End - fixed configs

type metricUpdate struct {
	WorkspaceID string  `json:"workspaceId"`
	MetricID    string  `json:"metricId"`
	Count       int64   `json:"count"`
	Date        string  `json:"date"`
	UserID      *string `json:"userId,omitempty"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type rangeCheck struct {
	name        string
	workspaceID string
	userID      string
	fromDate    string
	toDate      string
	expected    int64
}

// main runs the e2e scenario: 001_ingest_then_query
//
// This scenario tests the end-to-end flow of metric updates through the async
// stream into the counter store, and range queries that combine hourly and
// daily buckets.
//
// What it tests:
//   - Async ingestion via POST /metric-updates (single object and arrays)
//   - Stream batching and application of increments to both granularities
//   - Workspace and user scoped counters
//   - GET /metric-count over ranges that decompose into lead hours, whole days and trail hours
//
// Expected results:
//   - A single update of count 5 at 2024-01-15T14 is counted 5 over January
//   - The load phase yields updatesPerHour per hour for the workspace, and
//     updatesPerHour/usersPerHour per hour for each user
//   - Partial-day ranges count exactly the hours they cover
func main() {
	// these configs can be changed to run the scenario
	baseURL := getEnv("BASE_URL", "http://localhost:8080") // Base URL of the usage metrics API server
	parallel := getEnvInt("PARALLEL", 4)                   // Number of concurrent publish requests
	settleTimeout := 30 * time.Second                      // How long to wait for the stream to apply everything

	// unique workspaces keep reruns against a persistent store independent
	runID := time.Now().UTC().Format("20060102T150405.000000000")
	exampleWorkspace := "ws-example-" + runID
	loadWorkspace := "ws-load-" + runID

	fmt.Println("Starting e2e scenario: 001_ingest_then_query")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("RUN_ID: %s\n", runID)
	fmt.Println()

	// Phase 1: the single update example
	example := metricUpdate{WorkspaceID: exampleWorkspace, MetricID: metricID, Count: 5, Date: "2024-01-15T14"}
	if err := publish(baseURL, example); err != nil {
		fail("publish example update: %v", err)
	}
	fmt.Println("Published example update")

	// Phase 2: load
	updates := generateLoad(loadWorkspace)
	requests := chunk(updates, itemsPerRequest)
	fmt.Printf("Publishing %d updates in %d requests...\n", len(updates), len(requests))

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var failed int64
	for i, items := range requests {
		wg.Add(1)
		workerChan <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-workerChan }()

			if err := publish(baseURL, items); err != nil {
				atomic.AddInt64(&failed, 1)
				fmt.Fprintf(os.Stderr, "ERROR: request %d failed: %v\n", i, err)
			}
		}()
	}
	wg.Wait()
	if failed > 0 {
		fail("%d publish requests failed", failed)
	}
	fmt.Println("All updates published")
	fmt.Println()

	// Phase 3: queries
	perUserPerHour := int64(updatesPerHour / usersPerHour)
	checks := []rangeCheck{
		{name: "example over January", workspaceID: exampleWorkspace, fromDate: "2024-01-01T00", toDate: "2024-01-31T23", expected: 5},
		{name: "example outside hour", workspaceID: exampleWorkspace, fromDate: "2024-01-15T15", toDate: "2024-01-31T23", expected: 0},
		{name: "example single hour", workspaceID: exampleWorkspace, fromDate: "2024-01-15T14", toDate: "2024-01-15T14", expected: 5},
		{name: "load whole range", workspaceID: loadWorkspace, fromDate: "2024-03-01T00", toDate: "2024-03-03T23", expected: loadDays * 24 * updatesPerHour},
		{name: "load lead and trail hours", workspaceID: loadWorkspace, fromDate: "2024-03-01T22", toDate: "2024-03-03T01", expected: (2 + 24 + 2) * updatesPerHour},
		{name: "load one user", workspaceID: loadWorkspace, userID: "user-0", fromDate: "2024-03-01T00", toDate: "2024-03-03T23", expected: loadDays * 24 * perUserPerHour},
		{name: "load one user partial day", workspaceID: loadWorkspace, userID: "user-1", fromDate: "2024-03-02T06", toDate: "2024-03-02T11", expected: 6 * perUserPerHour},
	}

	deadline := time.Now().Add(settleTimeout)
	mismatches := 0
	for _, check := range checks {
		var got int64
		for {
			var err error
			got, err = queryCount(baseURL, check)
			if err != nil {
				fail("query %q: %v", check.name, err)
			}
			if got == check.expected || time.Now().After(deadline) {
				break
			}
			time.Sleep(200 * time.Millisecond)
		}

		status := "OK"
		if got != check.expected {
			status = "MISMATCH"
			mismatches++
		}
		fmt.Printf("[%s] %s: got %d, expected %d\n", status, check.name, got, check.expected)
	}

	fmt.Println()
	if mismatches > 0 {
		fail("%d of %d checks mismatched", mismatches, len(checks))
	}
	fmt.Println("Scenario completed successfully")
}

// generateLoad builds updatesPerHour updates of count 1 for every hour of the load days.
func generateLoad(workspaceID string) []metricUpdate {
	updates := make([]metricUpdate, 0, loadDays*24*updatesPerHour)
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < loadDays*24; h++ {
		date := start.Add(time.Duration(h) * time.Hour).Format("2006-01-02T15")
		for i := 0; i < updatesPerHour; i++ {
			userID := fmt.Sprintf("user-%d", i%usersPerHour)
			updates = append(updates, metricUpdate{
				WorkspaceID: workspaceID,
				MetricID:    metricID,
				Count:       1,
				Date:        date,
				UserID:      &userID,
			})
		}
	}
	return updates
}

func chunk(updates []metricUpdate, size int) [][]metricUpdate {
	var chunks [][]metricUpdate
	for size < len(updates) {
		updates, chunks = updates[size:], append(chunks, updates[:size])
	}
	return append(chunks, updates)
}

func publish(baseURL string, body any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/metric-updates", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

func queryCount(baseURL string, check rangeCheck) (int64, error) {
	params := url.Values{}
	params.Set("workspaceId", check.workspaceID)
	params.Set("metricId", metricID)
	params.Set("fromDate", check.fromDate)
	params.Set("toDate", check.toDate)
	if check.userID != "" {
		params.Set("userId", check.userID)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(baseURL + "/metric-count?" + params.Encode())
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("HTTP %d: %s", resp.StatusCode, respBody)
	}

	var result countResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Count, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(1)
}
