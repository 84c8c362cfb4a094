// Copyright © 2026 Geoff Holden <geoff@geoffholden.com>

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/geoffholden/dhtwx/reader"
	"github.com/geoffholden/dhtwx/sink"
	"github.com/geoffholden/dhtwx/station"
	"github.com/geoffholden/dhtwx/units"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// pollCmd represents the poll command
var pollCmd = &cobra.Command{
	Use:     "poll",
	Aliases: []string{"driver", "loop"},
	Short:   "Poll the sensor file",
	Long: `Polls the sensor file at a fixed interval and emits one loop packet per
poll. Packets go to standard output and, when configured, to an MQTT broker
and a Prometheus metrics endpoint. Runs until interrupted.`,
	RunE: poll,
}

func pollInit() {
	if !pollCmd.Flags().HasFlags() {
		pollCmd.Flags().String("type", station.DefaultVariant, "Station type, one of ["+strings.Join(station.Variants(), ", ")+"]")
		pollCmd.Flags().String("path", "", "Sensor file (default depends on the station type)")
		pollCmd.Flags().String("poll-interval", "", "Seconds between polls (default 30)")
		pollCmd.Flags().StringSlice("label", nil, "Rename a field, raw=name (repeatable)")
		pollCmd.Flags().String("station-config", "", "Station configuration file; overrides type, path, poll-interval and label")
		pollCmd.Flags().String("format", sink.FormatText, "Output format, text or json")
		pollCmd.Flags().String("broker", "", "MQTT broker to publish to, e.g. tcp://localhost:1883")
		pollCmd.Flags().String("topic", sink.DefaultTopic, "MQTT topic")
		pollCmd.Flags().String("metrics-address", "", "Address to serve Prometheus metrics on")
		pollCmd.Flags().Bool("once", false, "Poll a single time and exit")
	}
}

func init() {
	RootCmd.AddCommand(pollCmd)
	pollInit()
	viper.BindPFlags(pollCmd.Flags())

	viper.SetDefault("units", map[string]string{
		"Temperature": "C",
		"Pressure":    "hPa",
	})
}

func readerConfig() (reader.Config, error) {
	if file := viper.GetString("station-config"); file != "" {
		c, err := station.LoadFile(file)
		if err != nil {
			return reader.Config{}, err
		}
		return c.ReaderConfig()
	}
	return station.Options{
		Type:         viper.GetString("type"),
		Path:         viper.GetString("path"),
		PollInterval: viper.GetString("poll-interval"),
		Labels:       viper.GetStringSlice("label"),
	}.ReaderConfig()
}

func displayUnits() units.Display {
	// viper lower-cases map keys
	m := viper.GetStringMapString("units")
	return units.Display{
		Temperature: m["temperature"],
		Pressure:    m["pressure"],
	}
}

func poll(cmd *cobra.Command, args []string) error {
	log := notepad(os.Stderr)

	cfg, err := readerConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := sink.NewWriter(cmd.OutOrStdout(), viper.GetString("format"), displayUnits())
	if err != nil {
		return err
	}
	sinks := []sink.Sink{w}

	if broker := viper.GetString("broker"); broker != "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		clientid := fmt.Sprintf("dhtwx-%s-%d", hostname, os.Getpid())
		client, err := sink.DialMQTT(ctx, broker, clientid, log)
		if err != nil {
			return err
		}
		defer client.Disconnect(250)
		sinks = append(sinks, sink.NewMQTT(client, viper.GetString("topic"), log))
	}

	if addr := viper.GetString("metrics-address"); addr != "" {
		reg := prometheus.NewRegistry()
		p, err := sink.NewPrometheus(reg)
		if err != nil {
			return err
		}
		sinks = append(sinks, p)
		go serveMetrics(ctx, addr, reg, log)
	}

	r := reader.New(cfg, log)
	log.INFO.Println("driver is", r.HardwareName())

	if viper.GetBool("once") {
		r.Once(sinks...)
		return nil
	}
	if err := r.Run(ctx, sinks...); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log *jww.Notepad) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>
			<head><title>dhtwx</title></head>
			<body>
			<h1>dhtwx</h1>
			<p><a href="/metrics">Metrics</a></p>
			</body></html>`))
	})
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	log.INFO.Println("Serving metrics on", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ERROR.Println(err)
	}
}
