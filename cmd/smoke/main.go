// Smoke client for a running transactions-api instance.
//
// Usage:
//
//	go run cmd/smoke/main.go -url http://localhost:8080
//
// Walks every endpoint, prints status codes and payload excerpts, and
// exits non-zero when any endpoint misbehaves.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type check struct {
	name string
	path string
	want int
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the API")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	flag.Parse()

	checks := []check{
		{"root metadata", "/", http.StatusOK},
		{"health (database probe)", "/health", http.StatusOK},
		{"health (v1)", "/api/v1/health", http.StatusOK},
		{"transactions listing", "/api/v1/transactions/?limit=5", http.StatusOK},
		{"summary", "/api/v1/transactions/summary", http.StatusOK},
		{"by-category", "/api/v1/transactions/by-category", http.StatusOK},
		{"by-country", "/api/v1/transactions/by-country", http.StatusOK},
		{"inverted range rejected", "/api/v1/transactions/?data_inicio=2011-06-01&data_fim=2011-05-01", http.StatusBadRequest},
		{"out-of-window date rejected", "/api/v1/transactions/summary?data_inicio=2010-01-01", http.StatusBadRequest},
	}

	client := &http.Client{Timeout: *timeout}
	failed := 0

	for _, c := range checks {
		status, body, err := get(client, *baseURL+c.path)
		if err != nil {
			fmt.Printf("FAIL  %-32s %v\n", c.name, err)
			failed++
			continue
		}

		mark := "ok  "
		if status != c.want {
			mark = "FAIL"
			failed++
		}
		fmt.Printf("%s  %-32s %d  %s\n", mark, c.name, status, excerpt(body, 120))
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d checks failed\n", failed, len(checks))
		os.Exit(1)
	}
	fmt.Printf("\nall %d checks passed\n", len(checks))
}

func get(client *http.Client, url string) (int, []byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// excerpt compacts a JSON body onto one line and truncates it.
func excerpt(body []byte, max int) string {
	var v any
	s := string(body)
	if err := json.Unmarshal(body, &v); err == nil {
		if compact, err := json.Marshal(v); err == nil {
			s = string(compact)
		}
	}
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
