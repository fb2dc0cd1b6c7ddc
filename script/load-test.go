package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Transaction represents the transaction payload
type Transaction struct {
	IdempotencyKey string `json:"idempotencyKey"`
	Amount         string `json:"amount"`
	Type           string `json:"type"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ErrorCounts        map[string]int
	ScenarioStats      map[string]int
	Lock               sync.Mutex
}

// TransactionScenario defines a transaction scenario
type TransactionScenario struct {
	Name   string
	Type   string
	Amount string
	// Replay reuses a previously sent idempotency key, which must still
	// come back as a success without changing the balance.
	Replay bool
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	userIDsStr := flag.String("u", "1,2,3", "Comma-separated list of user IDs to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var userIDs []string
	for _, id := range strings.Split(*userIDsStr, ",") {
		if id = strings.TrimSpace(id); id != "" {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		userIDs = []string{"1"}
	}

	scenarios := []TransactionScenario{
		{Name: "Credit Small", Type: "CREDIT", Amount: "10.00"},
		{Name: "Credit Medium", Type: "CREDIT", Amount: "25.50"},
		{Name: "Credit Large", Type: "CREDIT", Amount: "100.00"},
		{Name: "Debit Small", Type: "DEBIT", Amount: "5.00"},
		{Name: "Debit Medium", Type: "DEBIT", Amount: "30.00"},
		{Name: "Replay Credit", Type: "CREDIT", Amount: "10.00", Replay: true},
	}

	fmt.Printf("Load testing API across %d users: %v\n", len(userIDs), userIDs)
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour,
		ErrorCounts:     make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	// Keys already sent, available for replay scenarios
	replayKeys := &replayPool{}

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(*baseURL, *delayMs, userIDs, scenarios, replayKeys, jobs, results, stats)
		}(i)
	}

	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.TotalResponseTime += result.ResponseTime
			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	fmt.Println("Test running...")

	wg.Wait()
	close(results)

	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

// replayPool holds idempotency keys from earlier requests, keyed by user so a
// replay hits the same user's ledger
type replayPool struct {
	mu   sync.Mutex
	keys []replayEntry
}

type replayEntry struct {
	userID string
	key    string
}

func (p *replayPool) add(userID, key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, replayEntry{userID: userID, key: key})
}

func (p *replayPool) pick() (replayEntry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return replayEntry{}, false
	}
	return p.keys[rand.Intn(len(p.keys))], true
}

func worker(baseURL string, delayMs int, userIDs []string, scenarios []TransactionScenario,
	replayKeys *replayPool, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		userID := userIDs[rand.Intn(len(userIDs))]
		scenario := scenarios[rand.Intn(len(scenarios))]

		key := uuid.NewString()
		if scenario.Replay {
			if entry, ok := replayKeys.pick(); ok {
				userID = entry.userID
				key = entry.key
			}
		}

		stats.Lock.Lock()
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		apiURL := fmt.Sprintf("%s/user/%s/transaction", baseURL, userID)

		transaction := Transaction{
			IdempotencyKey: key,
			Amount:         scenario.Amount,
			Type:           scenario.Type,
		}

		jsonData, err := json.Marshal(transaction)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}
		req.Header.Set("Content-Type", "application/json")

		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			result.StatusCode = resp.StatusCode
			// 422 is an expected outcome for debits against a thin balance
			result.Success = (resp.StatusCode >= 200 && resp.StatusCode < 300) ||
				resp.StatusCode == http.StatusUnprocessableEntity
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
			}
			resp.Body.Close()

			if result.Success && !scenario.Replay {
				replayKeys.add(userID, key)
			}
		}

		results <- result
	}
}

func printResults(stats *TestStats) {
	tps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	completed := stats.SuccessfulRequests + stats.FailedRequests
	if completed > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(completed)
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("TPS:                 %.2f\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)

	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	for scenario, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}
}
