// Package cmd implements the stepwatch command line interface for working
// with recorded step logs.
package cmd

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// This is to keep all fields needed for the main/root stepwatch command.
type rootCommand struct {
	cmd     *cobra.Command
	logger  *logrus.Logger
	verbose bool
}

func newRootCommand() *rootCommand {
	c := &rootCommand{
		logger: logrus.StandardLogger(),
	}
	c.cmd = &cobra.Command{
		Use:           "stepwatch",
		Short:         "inspect recorded WebDriver step logs",
		Long:          "stepwatch reads the JSONL step logs the json output writes and renders or aggregates them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if c.verbose {
				c.logger.SetLevel(logrus.DebugLevel)
			}
		},
	}
	c.cmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	c.cmd.AddCommand(getFmtCmd(c), getStatsCmd(c))
	return c
}

// Execute parses the command line and runs the selected subcommand.
func Execute() {
	c := newRootCommand()
	if err := c.cmd.Execute(); err != nil {
		c.logger.Error(err.Error())
		os.Exit(1)
	}
}

// openLog opens a step log for reading: "-" means stdin, a .gz suffix means
// the file is gzipped the way the json output writes it.
func openLog(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &gzipLog{gz: gz, file: f}, nil
}

type gzipLog struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipLog) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipLog) Close() error {
	_ = g.gz.Close()
	return g.file.Close()
}
