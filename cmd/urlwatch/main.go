package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dvdk01/urlwatch/internal/application"
	"github.com/dvdk01/urlwatch/internal/config"
	"github.com/dvdk01/urlwatch/internal/monitor"
	"github.com/dvdk01/urlwatch/internal/notify"
	"github.com/dvdk01/urlwatch/internal/probe"
	"github.com/dvdk01/urlwatch/internal/schema"
	"github.com/dvdk01/urlwatch/internal/validator"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Default()

	flag.StringVar(&cfg.URL, "url", "", "target URL to watch (required)")
	flag.DurationVar(&cfg.Interval, "interval", cfg.Interval, "delay between probes")
	flag.DurationVar(&cfg.LatencyThreshold, "threshold", cfg.LatencyThreshold, "acceptable response latency")
	flag.DurationVar(&cfg.ProbeTimeout, "timeout", cfg.ProbeTimeout, "per-probe request timeout")
	flag.StringVar(&cfg.OnFailure, "on-failure", cfg.OnFailure, "policy after a non-OK event: continue or terminate")
	flag.BoolVar(&cfg.RequireInitialSuccess, "initial-check", false, "require the first probe to succeed before monitoring starts")
	flag.BoolVar(&cfg.SNSEnabled, "sns", false, "send SMS alerts via AWS SNS (needs AWS_PROFILE and CELL_PHONE)")
	verbose := flag.Bool("verbose", false, "log per-probe heartbeats")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// When only the threshold was raised, keep the timeout above it so slow
	// responses are still measured instead of classified as timeouts.
	timeoutSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "timeout" {
			timeoutSet = true
		}
	})
	if !timeoutSet && cfg.ProbeTimeout < cfg.LatencyThreshold {
		cfg.ProbeTimeout = 2 * cfg.LatencyThreshold
	}

	if cfg.SNSEnabled {
		cfg.MergeEnv()
	}

	if err := validator.New().Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.New(http.DefaultClient, cfg.ProbeTimeout)

	var notifier notify.Notifier = notify.NewLog(nil)
	if cfg.SNSEnabled {
		sn, err := notify.NewSNS(ctx, notify.SNSConfig{
			Profile: cfg.AWSProfile,
			Phone:   cfg.CellPhone,
		})
		if err != nil {
			log.WithError(err).Fatal("SNS notifier setup failed")
		}
		if err := sn.Announce(ctx, "Begin monitoring: "+cfg.URL); err != nil {
			log.WithError(err).Fatal("SNS test publish failed, check profile permissions")
		}
		notifier = sn
	}

	if cfg.RequireInitialSuccess {
		if result := prober.Probe(ctx, cfg.URL); !result.Reachable {
			log.WithError(result.Err).Fatal("target unreachable at startup")
		}
	}

	target := schema.Target{
		URL:              cfg.URL,
		Interval:         cfg.Interval,
		LatencyThreshold: cfg.LatencyThreshold,
	}

	log.WithFields(log.Fields{
		"os":        runtime.GOOS,
		"url":       target.URL,
		"interval":  target.Interval,
		"threshold": target.LatencyThreshold,
		"sns":       cfg.SNSEnabled,
	}).Info("begin monitoring")

	events := make(chan schema.Event, 16)
	console := application.NewConsole(target.URL, events, os.Stdout)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := console.Start(ctx); err != nil {
			log.WithError(err).Error("failed to start application")
		}
	}()

	loop := monitor.New(target, monitor.FailurePolicy(cfg.OnFailure), prober, notifier, events, os.Stdout)
	if err := loop.Run(ctx); err != nil {
		log.WithError(err).Fatal("monitor loop failed")
	}
	<-done

	if ctx.Err() != nil {
		log.Info("terminated manually")
	}
}
