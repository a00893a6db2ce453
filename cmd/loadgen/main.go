// loadgen drives synthetic order flow against a running server and
// reports throughput and the fill/rest split.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"
)

func main() {
	var (
		addr     = flag.String("addr", "http://127.0.0.1:8080", "server base URL")
		symbol   = flag.String("symbol", "AAPL", "symbol to trade")
		workers  = flag.Int("workers", 4, "concurrent order producers")
		duration = flag.Duration("duration", 5*time.Second, "test duration")
	)
	flag.Parse()

	fmt.Printf("load test: %s on %s, %d workers, %v\n", *symbol, *addr, *workers, *duration)

	var (
		placed  atomic.Int64
		filled  atomic.Int64
		resting atomic.Int64
		failed  atomic.Int64
	)

	client := &http.Client{Timeout: 2 * time.Second}
	stop := make(chan struct{})
	start := time.Now()

	for w := 0; w < *workers; w++ {
		go func(seed int64) {
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
				}

				// Alternate sides around a common price band so orders cross.
				side := "buy"
				if rng.Intn(2) == 1 {
					side = "sell"
				}
				body, _ := json.Marshal(map[string]any{
					"symbol":   *symbol,
					"side":     side,
					"price":    int64(100 + rng.Intn(20)),
					"quantity": int64(1 + rng.Intn(50)),
				})

				resp, err := client.Post(*addr+"/api/v1/orders", "application/json", bytes.NewReader(body))
				if err != nil {
					failed.Add(1)
					continue
				}

				var result struct {
					Status string `json:"status"`
				}
				if resp.StatusCode == http.StatusOK {
					_ = json.NewDecoder(resp.Body).Decode(&result)
					placed.Add(1)
					if result.Status == "filled" {
						filled.Add(1)
					} else {
						resting.Add(1)
					}
				} else {
					failed.Add(1)
				}
				resp.Body.Close()
			}
		}(int64(w) + 1)
	}

	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			elapsed := time.Since(start)
			total := placed.Load()
			fmt.Printf("[%3.0fs] placed: %d (%.0f/s) | filled: %d | resting: %d | failed: %d\n",
				elapsed.Seconds(), total, float64(total)/elapsed.Seconds(),
				filled.Load(), resting.Load(), failed.Load())
		}
	}()

	time.Sleep(*duration)
	close(stop)
	ticker.Stop()
	elapsed := time.Since(start)

	total := placed.Load()
	fmt.Println("\n=== results ===")
	fmt.Printf("duration:   %v\n", elapsed)
	fmt.Printf("placed:     %d (%.0f orders/sec)\n", total, float64(total)/elapsed.Seconds())
	fmt.Printf("filled:     %d\n", filled.Load())
	fmt.Printf("resting:    %d\n", resting.Load())
	fmt.Printf("failed:     %d\n", failed.Load())
	if total > 0 {
		fmt.Printf("fill rate:  %.2f%%\n", float64(filled.Load())/float64(total)*100)
	}
}
