package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rithythul/koompi-os/internal/assistant"
	"github.com/rithythul/koompi-os/internal/config"
	"github.com/rithythul/koompi-os/internal/ingest"
	"github.com/rithythul/koompi-os/internal/intent"
	"github.com/rithythul/koompi-os/internal/knowledge"
	"github.com/rithythul/koompi-os/internal/llm"
	"github.com/rithythul/koompi-os/internal/server"
	"github.com/rithythul/koompi-os/internal/system"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "koompi [question]",
	Short:   "KOOMPI OS assistant",
	Long:    "Natural-language system management and Q&A for KOOMPI OS.\n\nAsk anything directly: koompi \"install firefox\" or koompi \"how do snapshots work?\"",
	Version: version,
	Args:    cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.LoadOrDefault(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return handleNaturalLanguage(strings.Join(args, " "))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(rollbackCmd)
	rootCmd.AddCommand(setupYayCmd)
}

// handleNaturalLanguage routes free-form input: system intents run
// directly, everything else goes to the assistant.
func handleNaturalLanguage(text string) error {
	classification := intent.NewClassifier().Classify(text)
	if verbose {
		log.Printf("intent=%s confidence=%.2f entities=%v",
			classification.Intent, classification.Confidence, classification.Entities)
	}

	handled, err := system.NewExecutor().Dispatch(classification)
	if handled {
		return err
	}
	return askAssistant(text, true)
}

func askAssistant(query string, useKnowledge bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	resp := newAssistant(st).Ask(context.Background(), query, useKnowledge)
	fmt.Println(resp.Text)
	if verbose {
		log.Printf("source=%s confidence=%.2f offline=%v", resp.Source, resp.Confidence, resp.IsOffline)
	}
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("koompi", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/koompi/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to set the LLM provider and API key environment variable.")
		return nil
	},
}

// --- ask command ---

var noKnowledge bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return askAssistant(strings.Join(args, " "), !noKnowledge)
	},
}

func init() {
	askCmd.Flags().BoolVar(&noKnowledge, "no-knowledge", false, "Skip the local knowledge base")
}

// --- chat command ---

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		assist := newAssistant(st)
		classifier := intent.NewClassifier()
		executor := system.NewExecutor()

		fmt.Println("KOOMPI Assistant. Type 'exit' to quit.")
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("\nYou: ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			switch strings.ToLower(line) {
			case "exit", "quit", "bye":
				fmt.Println("Goodbye!")
				return nil
			}

			handled, err := executor.Dispatch(classifier.Classify(line))
			if handled {
				if err != nil {
					fmt.Printf("Error: %v\n", err)
				}
				continue
			}

			resp := assist.Ask(context.Background(), line, true)
			fmt.Printf("\nAssistant: %s\n", resp.Text)
		}
		return scanner.Err()
	},
}

// --- search command ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the package repositories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().SearchPackages(strings.Join(args, " "))
	},
}

// --- stats command ---

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStats()
	},
}

func printStats() error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	fmt.Println("Knowledge Base:")
	fmt.Printf("  Articles: %d\n", stats.TotalArticles)
	fmt.Printf("  Size: %.1f MB\n", float64(stats.SizeBytes)/1024/1024)
	fmt.Printf("  Path: %s\n", st.Path())

	if len(stats.BySource) > 0 {
		fmt.Println("\nBy source:")
		for _, k := range sortedKeys(stats.BySource) {
			fmt.Printf("  %s: %d\n", k, stats.BySource[k])
		}
	}
	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, k := range sortedKeys(stats.ByCategory) {
			fmt.Printf("  %s: %d\n", k, stats.ByCategory[k])
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(st, newAssistant(st), port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- ingest command ---

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Manage the knowledge base",
}

var ingestBuiltinCmd = &cobra.Command{
	Use:   "builtin",
	Short: "Seed the built-in KOOMPI articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Seed(); err != nil {
			return fmt.Errorf("seeding knowledge base: %w", err)
		}
		fmt.Println("Built-in articles seeded.")
		return printStoreCount(st)
	},
}

var ingestLimit int

var ingestXMLCmd = &cobra.Command{
	Use:   "xml [dump-file]",
	Short: "Import articles from a MediaWiki XML dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		count, err := ingest.ImportXML(st, args[0], ingestLimit)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d articles.\n", count)
		return nil
	},
}

var fetchEssential bool

var ingestFetchCmd = &cobra.Command{
	Use:   "fetch [titles...]",
	Short: "Fetch articles from the ArchWiki API",
	RunE: func(cmd *cobra.Command, args []string) error {
		titles := args
		if fetchEssential {
			titles = ingest.EssentialArticles
		}
		if len(titles) == 0 {
			return fmt.Errorf("no titles given; pass titles or use --essential")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		fetcher := ingest.NewFetcher(cfg.Knowledge.WikiAPIURL)
		count := fetcher.FetchInto(context.Background(), st, titles)
		fmt.Printf("Fetched %d of %d articles.\n", count, len(titles))
		return nil
	},
}

var ingestURLCmd = &cobra.Command{
	Use:   "url [url]",
	Short: "Ingest a web page into the knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		title, err := ingest.IngestURL(st, args[0], 30*time.Second)
		if err != nil {
			return err
		}
		fmt.Printf("Stored: %s\n", title)
		return nil
	},
}

var ingestRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh stored articles from recent-changes feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		feeds := make([]ingest.Feed, 0, len(cfg.Sources.Feeds))
		for _, f := range cfg.Sources.Feeds {
			feeds = append(feeds, ingest.Feed{URL: f.URL, Name: f.Name})
		}
		if len(feeds) == 0 {
			return fmt.Errorf("no feeds configured; add sources.feeds to the config")
		}

		fetcher := ingest.NewFetcher(cfg.Knowledge.WikiAPIURL)
		count := ingest.RefreshFromFeeds(context.Background(), st, fetcher, feeds, ingestLimit)
		fmt.Printf("Refreshed %d articles.\n", count)
		return nil
	},
}

var ingestStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printStats()
	},
}

func init() {
	ingestXMLCmd.Flags().IntVar(&ingestLimit, "limit", 0, "Maximum articles to import (0 = no limit)")
	ingestRefreshCmd.Flags().IntVar(&ingestLimit, "limit", 50, "Maximum articles to refresh")
	ingestFetchCmd.Flags().BoolVar(&fetchEssential, "essential", false, "Fetch the curated essential article set")

	ingestCmd.AddCommand(ingestBuiltinCmd)
	ingestCmd.AddCommand(ingestXMLCmd)
	ingestCmd.AddCommand(ingestFetchCmd)
	ingestCmd.AddCommand(ingestURLCmd)
	ingestCmd.AddCommand(ingestRefreshCmd)
	ingestCmd.AddCommand(ingestStatsCmd)
}

func printStoreCount(st *knowledge.Store) error {
	stats, err := st.GetStats()
	if err != nil {
		return err
	}
	fmt.Printf("Knowledge base now has %d articles.\n", stats.TotalArticles)
	return nil
}

// --- system commands ---

var installCmd = &cobra.Command{
	Use:   "install [package]",
	Short: "Install a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().Install(args[0])
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [package]",
	Short: "Remove a package",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().Remove(args[0])
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the system",
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().Update()
	},
}

var desktopCmd = &cobra.Command{
	Use:   "desktop [name]",
	Short: "Install a desktop environment",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			names := system.DesktopNames()
			sort.Strings(names)
			fmt.Println("Available desktops:")
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		}
		return system.NewExecutor().InstallDesktop(args[0])
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage system snapshots",
}

var snapshotCreateCmd = &cobra.Command{
	Use:   "create [description...]",
	Short: "Create a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		description := "manual"
		if len(args) > 0 {
			description = strings.Join(args, " ")
		}
		return system.NewExecutor().CreateSnapshot(description)
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().ListSnapshots()
	},
}

var snapshotRollbackCmd = &cobra.Command{
	Use:   "rollback [id]",
	Short: "Roll back to a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().Rollback(args[0])
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().DeleteSnapshot(args[0])
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotCreateCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRollbackCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback [id]",
	Short: "Roll back to a snapshot (shortcut for snapshot rollback)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().Rollback(args[0])
	},
}

var setupYayCmd = &cobra.Command{
	Use:   "setup-yay",
	Short: "Install the yay AUR helper",
	RunE: func(cmd *cobra.Command, args []string) error {
		return system.NewExecutor().SetupYay()
	},
}

// --- helpers ---

func openStore() (*knowledge.Store, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return knowledge.Open(cfg.DBPath())
}

func newAssistant(st *knowledge.Store) *assistant.Assistant {
	provider := llm.CreateProvider(
		cfg.Assistant.Provider,
		cfg.Assistant.Model,
		cfg.Assistant.APIKeyEnv,
		cfg.Assistant.OllamaModel,
		cfg.Assistant.OllamaURL,
		assistant.SystemPrompt,
	)
	return assistant.New(st, provider, cfg.Timeout(), cfg.Assistant.MaxTokens)
}
