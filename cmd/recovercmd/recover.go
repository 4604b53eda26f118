package recovercmd

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arcana-network/secretrecovery/common"
	"github.com/arcana-network/secretrecovery/config"
	"github.com/arcana-network/secretrecovery/runner"
	"github.com/arcana-network/secretrecovery/telemetry"
	"github.com/arcana-network/secretrecovery/testcase"
)

const (
	configFileFlag  = "config"
	maxSubsetsFlag  = "max-subsets"
	noIncorrectFlag = "no-incorrect"
	logLevelFlag    = "log-level"
	logFileFlag     = "log-file"
	metricsAddrFlag = "metrics-addr"
	concurrencyFlag = "concurrency"
	httpTimeoutFlag = "http-timeout"
	outputFlag      = "output"
)

type flagValues struct {
	cfgFilePath string
	noIncorrect bool
	conf        *config.Config
}

func GetCommand() *cobra.Command {
	values := &flagValues{conf: config.GetDefaultConfig()}

	var cmd = &cobra.Command{
		Use:   "recover [locations...]",
		Short: "Recovers the secret of each test case file or URL",
		Long: "Recovers the secret of each test case by majority vote over every k-subset " +
			"of its points and lists the points inconsistent with the others. Without " +
			"locations the files from the config are used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, args, values)
		},
	}

	setFlags(cmd, values)
	return cmd
}

func setFlags(cmd *cobra.Command, values *flagValues) {
	d := config.GetDefaultConfig()

	cmd.Flags().StringVar(
		&values.cfgFilePath,
		configFileFlag,
		"./config.json",
		"Used to specify JSON config file path",
	)
	cmd.Flags().IntVar(
		&values.conf.MaxSubsets,
		maxSubsetsFlag,
		d.MaxSubsets,
		"Used to specify the largest number of subsets evaluated per test case",
	)
	cmd.Flags().BoolVar(
		&values.noIncorrect,
		noIncorrectFlag,
		false,
		"Skip the search for inconsistent points",
	)
	cmd.Flags().StringVar(
		&values.conf.LogLevel,
		logLevelFlag,
		d.LogLevel,
		"Used to specify the log level",
	)
	cmd.Flags().StringVar(
		&values.conf.LogFile,
		logFileFlag,
		"",
		"Used to specify a rotated log file instead of stderr",
	)
	cmd.Flags().StringVar(
		&values.conf.MetricsAddress,
		metricsAddrFlag,
		"",
		"Used to specify the address serving /metrics, e.g. ':9090'",
	)
	cmd.Flags().IntVar(
		&values.conf.Concurrency,
		concurrencyFlag,
		d.Concurrency,
		"Used to specify how many test cases are loaded at the same time",
	)
	cmd.Flags().IntVar(
		&values.conf.HTTPTimeoutSeconds,
		httpTimeoutFlag,
		d.HTTPTimeoutSeconds,
		"Used to specify the HTTP timeout in seconds for URL locations",
	)
	cmd.Flags().StringVar(
		&values.conf.Output,
		outputFlag,
		d.Output,
		"Used to specify the report format: 'table' or 'log'",
	)
}

// Builds the effective config: the config file when present, then every flag
// set explicitly on the command line, then the positional locations.
func resolveConfig(cmd *cobra.Command, args []string, values *flagValues) (*config.Config, error) {
	conf := values.conf
	if common.DoesFileExist(values.cfgFilePath) {
		c, err := config.ReadConfigJson(values.cfgFilePath)
		if err != nil {
			log.Infof("Config file parsing error")
			return nil, err
		}
		applyChangedFlags(cmd, values, c)
		conf = c
	}
	if values.noIncorrect {
		conf.DetectIncorrect = false
	}
	if len(args) > 0 {
		conf.Files = args
	}
	if err := conf.VerifyRequired(); err != nil {
		log.Infof("Config missing error")
		return nil, err
	}
	return conf, nil
}

func applyChangedFlags(cmd *cobra.Command, values *flagValues, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(maxSubsetsFlag) {
		c.MaxSubsets = values.conf.MaxSubsets
	}
	if flags.Changed(logLevelFlag) {
		c.LogLevel = values.conf.LogLevel
	}
	if flags.Changed(logFileFlag) {
		c.LogFile = values.conf.LogFile
	}
	if flags.Changed(metricsAddrFlag) {
		c.MetricsAddress = values.conf.MetricsAddress
	}
	if flags.Changed(concurrencyFlag) {
		c.Concurrency = values.conf.Concurrency
	}
	if flags.Changed(httpTimeoutFlag) {
		c.HTTPTimeoutSeconds = values.conf.HTTPTimeoutSeconds
	}
	if flags.Changed(outputFlag) {
		c.Output = values.conf.Output
	}
}

func runCommand(cmd *cobra.Command, args []string, values *flagValues) error {
	conf, err := resolveConfig(cmd, args, values)
	if err != nil {
		return err
	}
	if err := common.SetupLogging(conf.LogLevel, conf.LogFile); err != nil {
		return err
	}

	var metrics net.Listener
	if conf.MetricsAddress != "" {
		if metrics, err = telemetry.Listen(conf.MetricsAddress); err != nil {
			return err
		}
	}

	var sink runner.Sink = runner.LogSink{}
	if conf.Output == config.OutputTable {
		sink = runner.NewTableSink(cmd.OutOrStdout())
	}

	r := runner.New(
		testcase.NewMultiLoader(conf.HTTPTimeout()),
		sink,
		runner.Options{
			DetectIncorrect: conf.DetectIncorrect,
			MaxSubsets:      conf.MaxSubsets,
			Concurrency:     conf.Concurrency,
		},
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	if metrics != nil {
		go func() {
			served <- telemetry.Serve(ctx, metrics)
		}()
	}

	start := time.Now()
	results := r.Run(ctx, conf.Files)

	failed := 0
	for _, res := range results {
		if res.Failed() {
			failed++
		}
	}
	log.WithFields(log.Fields{
		"Cases":    len(results),
		"Failed":   failed,
		"Duration": time.Since(start).String(),
	}).Debug("recover: done")

	if metrics == nil {
		return nil
	}
	// Keep the counters scrapeable until interrupted.
	log.WithField("Address", metrics.Addr().String()).Info("recover: serving metrics until interrupted")
	return <-served
}
