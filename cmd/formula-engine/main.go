// Package main is the entry point for the formula engine.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/datuumlabs/formula-engine/pkg/api"
	"github.com/datuumlabs/formula-engine/pkg/config"
	"github.com/datuumlabs/formula-engine/pkg/formula"
	"github.com/datuumlabs/formula-engine/pkg/store"
	"github.com/datuumlabs/formula-engine/web"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "formula-engine",
	Short: "Safe arithmetic formula evaluator and API server",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web UI",
	RunE:  runServe,
}

var evalCmd = &cobra.Command{
	Use:   "eval <formula>",
	Short: "Evaluate a formula and print the result",
	Args:  cobra.MinimumNArgs(1),
	Run:   runEval,
}

var checkCmd = &cobra.Command{
	Use:   "check <formula>",
	Short: "Report whether a formula is safe and evaluable",
	Args:  cobra.MinimumNArgs(1),
	Run:   runCheck,
}

func init() {
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("formula-engine version {{.Version}}\n")

	serveCmd.Flags().Int("port", 0, "HTTP server port (default 8790, env PORT)")
	serveCmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	serveCmd.Flags().String("config", "", "Path to a YAML config file (env CONFIG)")
	serveCmd.Flags().Bool("no-ui", false, "Disable the web UI")

	rootCmd.AddCommand(serveCmd, evalCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()

	path := os.Getenv("CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Host = v
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Port = v
	}

	if v, _ := cmd.Flags().GetBool("no-ui"); v {
		cfg.DisableUI = true
	}

	s := store.New()
	server := api.New(s, cfg.BodyLimit)

	if !cfg.DisableUI {
		ui := web.New(s)
		ui.Register(server.App())
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down formula engine...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("Formula engine listening on %s (ui=%v)", addr, !cfg.DisableUI)
	return server.Listen(addr)
}

func runEval(cmd *cobra.Command, args []string) {
	input := strings.Join(args, " ")

	result, err := formula.Evaluate(input)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}

	color.Green("%v", result)
}

func runCheck(cmd *cobra.Command, args []string) {
	input := strings.Join(args, " ")

	if formula.IsValid(input) {
		color.Green("valid")
		return
	}
	color.Red("invalid")
	os.Exit(1)
}
