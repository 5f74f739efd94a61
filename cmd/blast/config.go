package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/games/blast"
)

var (
	flagConfigDefaults bool
	flagConfigCatalog  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the configuration the way the game does, apply the difficulty
preset and print the result as YAML. Invalid files are reported with the
offending field.

Search order: --config, ~/.blast/configs/blast.yaml, ./configs/blast.yaml,
built-in defaults.

Examples:
  blast config > ~/.blast/configs/blast.yaml
  blast config --config ./my-blast.yaml --difficulty hard
  blast config --defaults
  blast config --catalog`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in configuration file")
	configCmd.Flags().BoolVar(&flagConfigCatalog, "catalog", false, "Print the number of shapes per category")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadBlast(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg = config.ApplyBlastPreset(cfg, preset)
	if flagConfigCatalog {
		printCatalog(cfg)
		return
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}

func printCatalog(cfg config.BlastConfig) {
	gen, err := blast.NewGenerator(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	counts := gen.CatalogStats()
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	fmt.Printf("%d shapes\n", len(gen.Shapes()))
	for _, c := range categories {
		fmt.Printf("  %-10s %d\n", c, counts[c])
	}
}
