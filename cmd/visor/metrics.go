//go:build !android && !ios && !js

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

func metricsHandler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// serveMetrics exposes the registry on /metrics until stop is called.
func serveMetrics(addr string, reg prometheus.Gatherer) (stop func(), err error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %q: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsHandler(reg))

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", slog.String("err", err.Error()))
		}
	}()

	slog.Info("Serving metrics", slog.String("addr", listener.Addr().String()))

	stop = func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.Warn("Metrics server shutdown", slog.String("err", err.Error()))
		}
	}

	return stop, nil
}

// metricRows flattens the visor metrics into name, labels and value.
// Histograms report their sample count and sum.
func metricRows(reg prometheus.Gatherer) ([][]string, error) {
	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("gather metrics: %w", err)
	}

	var rows [][]string
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, "visor_") {
			continue
		}

		for _, m := range family.GetMetric() {
			var labels []string
			for _, pair := range m.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}

			var value string
			switch {
			case m.GetCounter() != nil:
				value = formatValue(m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				value = formatValue(m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%s", h.GetSampleCount(), formatValue(h.GetSampleSum()))
			default:
				continue
			}

			rows = append(rows, []string{name, strings.Join(labels, ","), value})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][0] < rows[j][0]
	})

	return rows, nil
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', 6, 64)
}

func displayMetrics(reg prometheus.Gatherer) error {
	rows, err := metricRows(reg)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Labels", "Value"})
	table.AppendBulk(rows)

	table.Render()
	fmt.Print(buf.String())

	return nil
}
