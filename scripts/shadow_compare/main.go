// Command shadow_compare replays read endpoints against the Go API and the
// legacy API side by side and reports response differences. Used during the
// cutover period to verify reconciliation output parity.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Endpoints []endpoint `json:"endpoints"`
}

type result struct {
	Endpoint     endpoint
	GoStatus     int
	LegacyStatus int
	StatusMatch  bool
	BodyMatch    bool
	GoLatency    time.Duration
	Err          error
}

// Response fields that legitimately differ between the two stacks and
// between runs. They are dropped before bodies are compared.
var volatileKeys = map[string]bool{
	"processing_time_ms": true,
	"request_id":         true,
	"timestamp":          true,
	"generated_at":       true,
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:8000", "legacy API base URL")
	flag.StringVar(&targetsPath, "targets", "scripts/shadow_compare/targets.json", "endpoints file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	endpoints, err := loadEndpoints(targetsPath)
	if err != nil {
		log.Fatalf("load endpoints: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var results []result
	breaking := 0

	for _, ep := range endpoints {
		res := compare(client, goBase, legacyBase, ep)
		if ep.Critical && (res.Err != nil || !res.StatusMatch || !res.BodyMatch) {
			breaking++
		}
		results = append(results, res)
	}

	report(results)
	fmt.Printf("checked %d endpoints, %d breaking diffs\n", len(results), breaking)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadEndpoints(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tf targetsFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, err
	}
	if len(tf.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints in %s", path)
	}
	return tf.Endpoints, nil
}

func compare(client *http.Client, goBase, legacyBase string, ep endpoint) result {
	res := result{Endpoint: ep}

	goBody, goStatus, goLatency, err := fetch(client, goBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("go request: %w", err)
		return res
	}
	legacyBody, legacyStatus, _, err := fetch(client, legacyBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("legacy request: %w", err)
		return res
	}

	res.GoStatus = goStatus
	res.LegacyStatus = legacyStatus
	res.GoLatency = goLatency
	res.StatusMatch = goStatus == legacyStatus
	res.BodyMatch = bodiesEqual(goBody, legacyBody)
	return res
}

func fetch(client *http.Client, base string, ep endpoint) ([]byte, int, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	url := strings.TrimRight(base, "/") + ep.Path

	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	scrub(&aj)
	scrub(&bj)
	return reflect.DeepEqual(aj, bj)
}

// scrub removes volatile keys and collapses whole-number floats so the two
// JSON trees can be compared structurally.
func scrub(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if volatileKeys[k] {
				delete(val, k)
			}
		}
		for k, child := range val {
			scrub(&child)
			val[k] = child
		}
	case []interface{}:
		for i, child := range val {
			scrub(&child)
			val[i] = child
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func report(results []result) {
	fmt.Println("shadow compare")
	fmt.Println("--------------")
	for _, res := range results {
		verdict := "ok"
		switch {
		case res.Err != nil:
			verdict = "error"
		case !res.StatusMatch || !res.BodyMatch:
			verdict = "diff"
		}
		fmt.Printf("[%-5s] %s %s\n", verdict, res.Endpoint.Method, res.Endpoint.Path)
		if res.Err != nil {
			fmt.Printf("        %v\n", res.Err)
			continue
		}
		fmt.Printf("        go=%d legacy=%d latency=%s status_match=%t body_match=%t\n",
			res.GoStatus, res.LegacyStatus, res.GoLatency.Round(time.Millisecond), res.StatusMatch, res.BodyMatch)
	}
}
