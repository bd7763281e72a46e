package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var obsCmd = &cobra.Command{
	Use:   "obs",
	Short: "Observability commands (query Prometheus)",
}

var promURL string

type PromResponse struct {
	Status string `json:"status"`
	Data   struct {
		Result []struct {
			Metric map[string]string `json:"metric"`
			Value  []interface{}     `json:"value"`
		} `json:"result"`
	} `json:"data"`
}

type MetricRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type namedQuery struct {
	name  string
	query string
}

var summaryQueries = []namedQuery{
	{"API Call Rate", `sum(rate(open189_api_requests_total[5m]))`},
	{"API Success Rate", `sum(rate(open189_api_requests_total{outcome="ok"}[5m])) / sum(rate(open189_api_requests_total[5m])) * 100`},
	{"Protocol Error Rate", `sum(rate(open189_api_requests_total{outcome="protocol_error"}[5m]))`},
	{"Transport Error Rate", `sum(rate(open189_api_requests_total{outcome="transport_error"}[5m]))`},
	{"Codes Received Rate", `rate(open189_randcodes_received_total[5m])`},
	{"Callback Request Rate", `sum(rate(open189_http_requests_total[5m]))`},
	{"Active Requests", `open189_active_requests`},
}

var latencyQueries = []namedQuery{
	{"API P50", `histogram_quantile(0.5, sum(rate(open189_api_request_duration_seconds_bucket[5m])) by (le))`},
	{"API P95", `histogram_quantile(0.95, sum(rate(open189_api_request_duration_seconds_bucket[5m])) by (le))`},
	{"API P99", `histogram_quantile(0.99, sum(rate(open189_api_request_duration_seconds_bucket[5m])) by (le))`},
	{"Callback P95", `histogram_quantile(0.95, sum(rate(open189_http_request_duration_seconds_bucket[5m])) by (le))`},
}

func obsRunner(queries []namedQuery) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		rows := make([]MetricRow, 0, len(queries))
		for _, q := range queries {
			rows = append(rows, MetricRow{Name: q.name, Value: queryProm(cmd.Context(), promURL, q.query)})
		}
		return printResult(cmd.OutOrStdout(), rows)
	}
}

var obsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show API and callback summary metrics",
	RunE:  obsRunner(summaryQueries),
}

var obsLatencyCmd = &cobra.Command{
	Use:   "latency",
	Short: "Show latency metrics",
	RunE:  obsRunner(latencyQueries),
}

// queryProm runs an instant query and renders the first sample, or a short
// reason when there is none.
func queryProm(ctx context.Context, baseURL, query string) string {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	u := strings.TrimRight(baseURL, "/") + "/api/v1/query?query=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "error: " + err.Error()
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "error: " + err.Error()
	}
	defer resp.Body.Close()

	var promResp PromResponse
	if err := json.NewDecoder(resp.Body).Decode(&promResp); err != nil {
		return "parse error"
	}
	if len(promResp.Data.Result) == 0 {
		return "no data"
	}

	result := promResp.Data.Result[0]
	if len(result.Value) >= 2 {
		return fmt.Sprintf("%v", result.Value[1])
	}
	return "no value"
}

func init() {
	obsCmd.PersistentFlags().StringVar(&promURL, "prom-url", "http://localhost:9091", "Prometheus-compatible query API URL")
	obsCmd.AddCommand(obsSummaryCmd, obsLatencyCmd)
	rootCmd.AddCommand(obsCmd)
}
