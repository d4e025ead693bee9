// cmd/sysmon/main.go
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sysmon-agent/internal/agent"
	"sysmon-agent/internal/collector"
	"sysmon-agent/internal/common/config"
	"sysmon-agent/internal/common/llm"
	"sysmon-agent/internal/common/logger"
	"sysmon-agent/internal/common/observability"
)

func main() {
	fmt.Println("LLM-Powered System Monitor Agent")
	fmt.Println(strings.Repeat("=", 50))

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		fmt.Fprintln(os.Stderr, "Set the OPENAI_API_KEY environment variable or add it to .env")
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
		zapLog.Info("metrics endpoint listening", zap.String("address", cfg.Metrics.Address))
	}

	chat, err := llm.NewClient(cfg.LLM)
	if err != nil {
		zapLog.Fatal("llm client init failed", zap.Error(err))
	}

	ctx := context.Background()
	registry := collector.NewSystemRegistry(cfg.Collectors, log)
	ag := agent.New(registry, chat, cfg.LLM, obs, log)
	ag.SelfTest(ctx)

	fmt.Println("\nTesting components...")
	health := ag.HealthCheck(ctx)
	allHealthy := true
	for _, component := range []string{agent.ComponentRegistry, agent.ComponentLLM} {
		status := "FAILED"
		if health[component] {
			status = "OK"
		} else {
			allHealthy = false
		}
		fmt.Printf("  %-18s %s\n", component+":", status)
	}
	if !allHealthy {
		fmt.Println("\nSome components failed. Please check your setup.")
		os.Exit(1)
	}

	printFunctions(ag.ListFunctions())

	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Println("Ask me anything about your system! Examples:")
	fmt.Println("  - 'What's my battery percentage?'")
	fmt.Println("  - 'Is my CPU running hot?'")
	fmt.Println("  - 'How much memory am I using?'")
	fmt.Println("Type 'help' for commands, 'quit' to exit.")

	repl(ctx, ag)
}

func repl(ctx context.Context, ag *agent.Agent) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nsysmon >> ")
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch fields := strings.Fields(line); fields[0] {
		case "quit", "exit", "q":
			fmt.Println("Bye!")
			return
		case "help":
			fmt.Println("Commands:")
			fmt.Println("  functions        list available system functions")
			fmt.Println("  health           run the component health check")
			fmt.Println("  raw <name ...>   invoke collectors directly, print raw data")
			fmt.Println("  quit             exit")
			fmt.Println("Anything else is treated as a question about your system.")
		case "functions":
			printFunctions(ag.ListFunctions())
		case "health":
			for component, ok := range ag.HealthCheck(ctx) {
				status := "FAILED"
				if ok {
					status = "OK"
				}
				fmt.Printf("  %-18s %s\n", component+":", status)
			}
		case "raw":
			if len(fields) < 2 {
				fmt.Println("usage: raw <function name ...>")
				continue
			}
			bundle := ag.RawSystemData(ctx, fields[1:])
			data, _ := json.MarshalIndent(bundle, "", "  ")
			fmt.Println(string(data))
		default:
			fmt.Println(ag.Answer(ctx, line))
		}
	}
}

func printFunctions(names []string) {
	fmt.Println("\nAvailable system functions:")
	for i, name := range names {
		fmt.Printf("  %2d. %s\n", i+1, name)
	}
}
