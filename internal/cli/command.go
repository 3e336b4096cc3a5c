package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/idelchi/bigtext/internal/bigtext"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Options holds the parsed command-line settings.
type Options struct {
	bigtext.Options

	// Quiet suppresses everything but candidates and errors.
	Quiet bool
	// HumanReadable prints sizes with binary units.
	HumanReadable bool
	// ShowRatio adds the compression ratio column to candidate lines.
	ShowRatio bool
	// Output is the summary format (text or json).
	Output string
	// Debug enables debug logging.
	Debug bool
	// LogFile additionally receives JSON logs.
	LogFile string
}

// Default flag values.
const (
	defaultMinSize          = "1G"
	defaultBlockSize        = "64k"
	defaultCheckLimit       = 10
	defaultCompressionRatio = 0.75
	defaultCriteria         = string(bigtext.CriteriaDeflate)
	defaultWorkers          = 1
	envPrefix               = "BIGTEXT"
)

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"text", "json"}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root cobra command.
func (c CLI) Command() *cobra.Command {
	v := viper.New()

	var configFile string

	cmd := &cobra.Command{
		Use:   "bigtext [flags] [root...]",
		Short: "Find large files that are text or compress well",
		Long: heredoc.Doc(`
			bigtext scans directories for large files whose content is plain text
			or compresses well, i.e. files that are worth compressing or archiving.

			Only the first --block-size bytes of each file are inspected. Once more
			than --check-limit files with the same extension were rejected in a row,
			further files with that extension are skipped without being read.

			Sizes accept the units b, k, M, G, T and P (binary, 1k = 1024 bytes) as
			well as forms like 10MB or 4GiB.

			Settings may also come from a config file (--config) or from
			environment variables prefixed with BIGTEXT_, e.g. BIGTEXT_MIN_SIZE.

			Candidates are printed to stdout as "size<TAB>path". Errors, throttled
			extensions and the summary go to stderr.
		`),
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			options, err := loadOptions(v, configFile, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			return logic(ctx, options, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	registerFlags(flags, &configFile)

	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

// registerFlags defines the command flags on flags.
func registerFlags(flags *pflag.FlagSet, configFile *string) {
	flags.SortFlags = false
	flags.String("min-size", defaultMinSize, "Minimum size of files to consider")
	flags.String("block-size", defaultBlockSize, "Examine the first N bytes of each file")
	flags.Int("check-limit", defaultCheckLimit,
		"Skip an extension after more than N of its files in a row were rejected")
	flags.Float64("compression-ratio", defaultCompressionRatio,
		"Highest compression ratio (new size / old size) selected by deflate and lz4")
	flags.String("criteria", defaultCriteria, "Candidate criteria: text, deflate or lz4")
	flags.IntP("workers", "j", defaultWorkers, "Number of parallel walkers (1 keeps walk order)")
	flags.BoolP("quiet", "q", false, "Only print errors and candidates")
	flags.BoolP("human-readable", "H", false, "Print sizes in a human readable format")
	flags.Bool("show-ratio", false, "Print the compression ratio of each candidate")
	flags.StringP("output", "o", "text", "Summary format: text or json")
	flags.Bool("debug", false, "Enable debug output")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.StringVar(configFile, "config", "", "Config file (yaml, toml or json)")
}

// loadOptions reads and validates the settings from v, configFile and the positional roots.
func loadOptions(v *viper.Viper, configFile string, args []string) (Options, error) {
	var options Options

	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return options, fmt.Errorf("reading config file: %w", err)
		}
	}

	minSize, err := ParseSize(v.GetString("min-size"))
	if err != nil {
		return options, fmt.Errorf("invalid min-size: %w", err)
	}

	blockSize, err := ParseSize(v.GetString("block-size"))
	if err != nil {
		return options, fmt.Errorf("invalid block-size: %w", err)
	}

	criteria, err := bigtext.ParseCriteria(v.GetString("criteria"))
	if err != nil {
		return options, fmt.Errorf("invalid criteria: %w", err)
	}

	options.Roots = args
	if len(options.Roots) == 0 {
		options.Roots = []string{"."}
	}

	options.MinSize = minSize
	options.BlockSize = blockSize
	options.CheckLimit = v.GetInt("check-limit")
	options.CompressionRatio = v.GetFloat64("compression-ratio")
	options.Criteria = criteria
	options.Workers = v.GetInt("workers")
	options.Quiet = v.GetBool("quiet")
	options.HumanReadable = v.GetBool("human-readable")
	options.ShowRatio = v.GetBool("show-ratio")
	options.Output = strings.ToLower(v.GetString("output"))
	options.Debug = v.GetBool("debug")
	options.LogFile = v.GetString("log-file")

	if !slices.Contains(allowedOutputs, options.Output) {
		return options, fmt.Errorf("invalid output format %q: must be one of %v", options.Output, allowedOutputs)
	}

	if err := options.Validate(); err != nil {
		return options, fmt.Errorf("invalid options: %w", err)
	}

	return options, nil
}
