package commands

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ledgercast-dev/ledgercast/internal/config"
	"github.com/ledgercast-dev/ledgercast/internal/convert"
	"github.com/ledgercast-dev/ledgercast/internal/logger"
	"github.com/ledgercast-dev/ledgercast/internal/normalize"
)

// configFileName is looked up in the working directory when no explicit
// config is given.
const configFileName = "ledgercast.yaml"

func newConvertCommand() *cobra.Command {
	var (
		output   string
		cfgPath  string
		rejects  string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "convert <input-file>",
		Short: "Convert a sales table (.csv or .xlsx) to a Beancount ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], output, cfgPath, rejects, logLevel)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output ledger path (default: input name with .beancount)")
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config file (default: ./"+configFileName+" if present)")
	cmd.Flags().StringVar(&rejects, "rejects", "", "write skipped rows to this CSV file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runConvert(input, output, cfgPath, rejects, logLevel string) error {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if logLevel == "" {
		logLevel = envCfg.LogLevel
	}
	log := logger.New(logLevel)

	cfg, err := resolveConfig(cfgPath, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	if output == "" {
		output = defaultOutputPath(input)
	}

	svc, err := convert.NewService(cfg, log)
	if err != nil {
		return err
	}

	report, err := svc.ConvertFile(input, output, rejects)
	if err != nil {
		return err
	}

	printSummary(report, output)
	if report.Fatal() {
		return errors.New("internal consistency errors occurred; see diagnostics above")
	}
	return nil
}

// resolveConfig picks the config source: explicit flag, then environment,
// then ledgercast.yaml in the working directory, then built-in defaults.
func resolveConfig(flagPath, envPath string) (*config.Config, error) {
	switch {
	case flagPath != "":
		return config.Load(flagPath)
	case envPath != "":
		return config.Load(envPath)
	}
	if _, err := os.Stat(configFileName); err == nil {
		return config.Load(configFileName)
	}
	return config.Default(), nil
}

func defaultOutputPath(input string) string {
	ext := ".beancount"
	if i := strings.LastIndexByte(input, '.'); i > 0 {
		return input[:i] + ext
	}
	return input + ext
}

func printSummary(report *convert.Report, output string) {
	color.Green("Converted %d transaction(s) to %s", report.Accepted, output)

	if report.Skipped > 0 {
		color.Yellow("Skipped %d row(s):", report.Skipped)
		reasons := make([]string, 0, len(report.Reasons))
		for reason := range report.Reasons {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Printf("  %s: %d\n", reason, report.Reasons[normalize.Reason(reason)])
		}
	}

	for _, c := range report.Collisions {
		color.Yellow("Account key %q shared by %q and %q", c.Key, c.First, c.Second)
	}
	for _, msg := range report.Internal {
		color.Red("Internal error: %s", msg)
	}
}
