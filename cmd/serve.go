package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/asalehi100/ibm-techxchange-hack/internal/bot"
	"github.com/asalehi100/ibm-techxchange-hack/internal/config"
	"github.com/asalehi100/ibm-techxchange-hack/internal/extract"
	"github.com/asalehi100/ibm-techxchange-hack/internal/httpx"
	"github.com/asalehi100/ibm-techxchange-hack/internal/openai"
	"github.com/asalehi100/ibm-techxchange-hack/internal/server"
	"github.com/asalehi100/ibm-techxchange-hack/internal/slack"
	"github.com/asalehi100/ibm-techxchange-hack/internal/teams"
	"github.com/asalehi100/ibm-techxchange-hack/internal/watsonx"
)

func newServeCmd() *cobra.Command {
	var listenAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Connect to Slack and handle scheduling requests",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(listenAddr)
		},
	}
	cmd.Flags().StringVar(&listenAddr, "listen-addr", "", "health/metrics listen address (overrides LISTEN_ADDR)")
	return cmd
}

func runServe(listenAddr string) error {
	logPrefix := "[taskmind]"

	config.LoadDotEnv(logPrefix)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	httpClient := httpx.NewClient(cfg.HTTPTimeout)

	var gen extract.Generator
	switch cfg.OracleProvider {
	case config.ProviderOpenAI:
		gen = openai.NewClient(httpClient, cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		gen = watsonx.NewClient(httpClient, cfg.WatsonxURL, cfg.WatsonxAPIKey, cfg.WatsonxProjectID, cfg.WatsonxModelID)
	}
	log.Printf("%s oracle provider: %s", logPrefix, cfg.OracleProvider)

	oracle := extract.NewOracle(gen, logPrefix)
	meetings := teams.NewClient(httpClient, cfg.AzureTenantID, cfg.AzureClientID, cfg.AzureClientSecret, cfg.TeamsOrganizerID)
	chat := slack.NewClient(httpClient, cfg.SlackBotToken, cfg.SlackAppToken)

	registry := prometheus.NewRegistry()
	runner := bot.NewRunner(logPrefix, oracle, meetings, chat, bot.NewMetrics(registry))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.ListenAddr, logPrefix, registry)
	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("%s metrics server stopped: %v", logPrefix, err)
		}
	}()

	log.Printf("%s connecting to Slack", logPrefix)
	err = chat.RunGatewayWithReconnect(ctx, func(ctx context.Context, ev slack.MessageEvent) error {
		// errors never escape a turn: log and keep the gateway alive
		if err := runner.HandleMessage(ctx, ev); err != nil {
			log.Printf("%s turn failed: user=%s err=%v", logPrefix, ev.User, err)
		}
		return nil
	}, slack.GatewayOptions{}, slack.ReconnectOptions{
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     10 * time.Second,
		OnDisconnect: func(err error, nextBackoff time.Duration) {
			log.Printf("%s gateway disconnected: %v (reconnecting in %s)", logPrefix, err, nextBackoff)
		},
	})
	if errors.Is(err, context.Canceled) {
		log.Printf("%s shutting down", logPrefix)
		return nil
	}
	return err
}
