package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"judidoc/internal/config"
	"judidoc/internal/extract"
	"judidoc/internal/harvest"
	"judidoc/internal/julia"
	"judidoc/internal/lint"
	"judidoc/internal/project"
	"judidoc/internal/scope"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "judidoc",
		Short: "Documentation harvester and lint frontend for Julia projects",
	}
	cfgPath    string
	projectDir string
	useRuntime bool
	juliaBin   string
	timeoutSec int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "p", "", "Julia project root used to resolve symbol scopes")

	harvestCmd.Flags().BoolVar(&useRuntime, "runtime", false, "Resolve documentation against a live Julia session instead of scanning sources")
	harvestCmd.Flags().StringVar(&juliaBin, "julia-bin", "", "Julia executable (overrides config)")

	lintCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "Lint timeout in seconds (overrides config)")

	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(lintCmd)
}

// loadConfig tolerates a missing config file: defaults cover everything the
// harvester needs for a plain source scan.
func loadConfig() *config.Config {
	cfg, _ := config.LoadConfig(cfgPath)
	return cfg
}

func newRunner(cfg *config.Config, root string) *julia.Runner {
	bin := cfg.Julia.Bin
	if juliaBin != "" {
		bin = juliaBin
	}
	secs := cfg.Julia.TimeoutSeconds
	if timeoutSec > 0 {
		secs = timeoutSec
	}
	return &julia.Runner{
		Bin:     bin,
		Project: root,
		Timeout: time.Duration(secs) * time.Second,
	}
}

func resolvePaths(cfg *config.Config, args []string) project.Paths {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	root := projectDir
	if root == "" {
		root = cfg.Project.Root
	}

	paths, err := project.Resolve(arg, root)
	if err != nil {
		log.Fatalf("Failed to resolve source file: %v", err)
	}
	return paths
}

var harvestCmd = &cobra.Command{
	Use:   "harvest [path]",
	Short: "Extract called functions from a Julia file and print their docstrings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		paths := resolvePaths(cfg, args)

		source, err := os.ReadFile(paths.SourceFile)
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}

		// The local scope always comes first; library scopes follow in
		// their configured order.
		scopes := []scope.Scope{scope.NewSourceScope(string(source))}
		if useRuntime {
			runner := newRunner(cfg, paths.Root)
			scopes = append(scopes, scope.NewRuntimeScope(runner, "Main"))
			for _, mod := range cfg.Julia.Modules {
				scopes = append(scopes, scope.NewRuntimeScope(runner, mod))
			}
		} else {
			pkg, err := scope.NewPackageScope(paths.Root)
			if err != nil {
				log.Fatalf("Failed to scan project scope: %v", err)
			}
			scopes = append(scopes, pkg)
		}

		pipeline := harvest.NewPipeline(extract.NewExtractor(), scope.NewChain(scopes...))
		res := pipeline.Run(string(source))

		if err := harvest.WriteOutput(os.Stdout, res); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Lint a Julia file through the external toolchain and print diagnostics",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		paths := resolvePaths(cfg, args)

		source, err := os.ReadFile(paths.SourceFile)
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}

		script := cfg.Julia.LintScript
		if !filepath.IsAbs(script) {
			script = filepath.Join(paths.Root, script)
		}

		runner := newRunner(cfg, paths.Root)
		report := lint.Run(cmd.Context(), runner, script, string(source))

		switch {
		case report.TimedOut:
			fmt.Println("⏱  Linter timed out; skipping (loading large packages like JUDI can take a while)")
		case report.Raw != "":
			fmt.Println(report.Raw)
		case len(report.Diagnostics) == 0:
			fmt.Println("✅ No linting issues found")
		default:
			fmt.Print(lint.Render(report.Diagnostics))
		}
	},
}
