package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/san-kum/mlutils/internal/config"
	"github.com/san-kum/mlutils/internal/dataset"
	"github.com/san-kum/mlutils/internal/fetch"
	"github.com/san-kum/mlutils/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	cfg        *config.Config

	mode       string
	testSize   float64
	seed       int64
	ignoreType bool
	outPath    string
	feature    string

	kind         string
	integerTicks bool
	preset       string
	xColumn      string
	yColumn      string
	csvPath      string
	gifPath      string
	framesDir    string
	savePath     string
	color        string
	termWidth    int
	termHeight   int

	chunkSize    int
	encoding     string
	metadataPath string
	destDir      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "mlutils",
		Short:             "dataset loading, point animation and file fetching utilities",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")

	loadCmd := &cobra.Command{
		Use:   "load [dataset]",
		Short: "load a dataset and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  loadDataset,
	}
	loadCmd.Flags().StringVar(&mode, "mode", "array", "numpy|array|pandas|table")

	splitCmd := &cobra.Command{
		Use:   "split [dataset]",
		Short: "split a dataset into train and test sets as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  splitDataset,
	}
	splitCmd.Flags().StringVar(&mode, "mode", "array", "numpy|array|pandas|table")
	splitCmd.Flags().Float64Var(&testSize, "test-size", config.DefaultTestSize, "fraction of samples in the test set")
	splitCmd.Flags().Int64Var(&seed, "seed", dataset.RandomSeed, "shuffle seed, -1 for random")
	splitCmd.Flags().BoolVar(&ignoreType, "ignore-type", false, "allow splitting in table mode")
	splitCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	plotCmd := &cobra.Command{
		Use:   "plot [dataset]",
		Short: "plot a dataset column in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotColumn,
	}
	plotCmd.Flags().StringVar(&feature, "feature", dataset.TargetColumn, "column to plot")

	animateCmd := &cobra.Command{
		Use:   "animate [dataset]",
		Short: "animate points one frame at a time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  animatePoints,
	}
	animateCmd.Flags().StringVar(&kind, "kind", "line", "line|scatter")
	animateCmd.Flags().BoolVar(&integerTicks, "integer-ticks", true, "only place ticks on integers")
	animateCmd.Flags().StringVar(&preset, "preset", "", "use a preset column pair")
	animateCmd.Flags().StringVar(&xColumn, "x", "", "x column (default sample index)")
	animateCmd.Flags().StringVar(&yColumn, "y", dataset.TargetColumn, "y column")
	animateCmd.Flags().StringVar(&csvPath, "csv", "", "read x,y points from a csv file instead of a dataset")
	animateCmd.Flags().StringVar(&gifPath, "gif", "", "write the animation as a gif")
	animateCmd.Flags().StringVar(&framesDir, "frames", "", "write every frame as png into a directory")
	animateCmd.Flags().StringVar(&savePath, "save", "", "save the final frame (png, svg, pdf)")
	animateCmd.Flags().StringVar(&color, "color", config.DefaultColor, "primitive color")
	animateCmd.Flags().IntVar(&termWidth, "width", 60, "terminal canvas width in cells")
	animateCmd.Flags().IntVar(&termHeight, "height", 15, "terminal canvas height in cells")

	presetsCmd := &cobra.Command{
		Use:   "presets [dataset]",
		Short: "list animation presets for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for dataset: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	fetchCmd := &cobra.Command{
		Use:   "fetch [url] [dest]",
		Short: "download a file",
		Args:  cobra.ExactArgs(2),
		RunE:  fetchFile,
	}
	fetchCmd.Flags().IntVar(&chunkSize, "chunk-size", config.DefaultChunkSize, "download chunk size in bytes")

	zipEntryCmd := &cobra.Command{
		Use:   "zip-entry [url] [entry]",
		Short: "print or save one member of a remote zip archive",
		Args:  cobra.ExactArgs(2),
		RunE:  zipEntry,
	}
	zipEntryCmd.Flags().StringVar(&encoding, "encoding", "utf-8", "charset of the entry")
	zipEntryCmd.Flags().StringVar(&destDir, "dest", "", "write the entry into this directory")

	metadataCmd := &cobra.Command{
		Use:   "metadata [dataset]",
		Short: "show the dataset metadata catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showMetadata,
	}
	metadataCmd.Flags().StringVar(&metadataPath, "metadata", "", "metadata json path")

	downloadCmd := &cobra.Command{
		Use:   "download [dataset]",
		Short: "download a dataset listed in the metadata catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  downloadDataset,
	}
	downloadCmd.Flags().StringVar(&metadataPath, "metadata", "", "metadata json path")
	downloadCmd.Flags().StringVar(&destDir, "dest", "", "destination directory (default data dir)")

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "list cached dataset files",
		RunE:  listCache,
	}
	cacheRmCmd := &cobra.Command{
		Use:   "rm [file]",
		Short: "remove a cached file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newCache().Remove(args[0])
		},
	}
	cacheCmd.AddCommand(cacheRmCmd)

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(loadCmd, splitCmd, plotCmd, animateCmd, presetsCmd, fetchCmd, zipEntryCmd, metadataCmd, downloadCmd, cacheCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig builds the effective configuration: defaults, then the config
// file, then flags given on the command line.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("mode") {
		cfg.Dataset.Mode = mode
	}
	if flags.Changed("test-size") {
		cfg.Dataset.TestSize = testSize
	}
	if flags.Changed("seed") {
		cfg.Dataset.Seed = seed
	}
	if flags.Changed("chunk-size") {
		cfg.Fetch.ChunkSize = chunkSize
	}
	if flags.Changed("metadata") {
		cfg.Fetch.MetadataPath = metadataPath
	}
	if flags.Changed("kind") {
		cfg.Animation.Kind = kind
	}
	if flags.Changed("integer-ticks") {
		cfg.Animation.IntegerTicks = integerTicks
	}
	if flags.Changed("color") {
		cfg.Animation.Color = color
	}
	return cfg.Validate()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func logger() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func newFetcher() *fetch.Client {
	return fetch.New(
		fetch.WithHTTPClient(&http.Client{Timeout: cfg.Fetch.Timeout}),
		fetch.WithLogger(logger()),
	)
}

func newCache() *storage.Store {
	return storage.New(filepath.Join(cfg.DataDir, "cache"))
}

func newLoader() (*dataset.Loader, error) {
	m, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	cache := newCache()
	if err := cache.Init(); err != nil {
		return nil, err
	}
	return dataset.NewLoader(m,
		dataset.WithBaseURL(cfg.Dataset.BaseURL),
		dataset.WithCache(cache),
		dataset.WithFetcher(newFetcher()),
		dataset.WithLogger(logger()),
	), nil
}
