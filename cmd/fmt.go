package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/stepwatch/stepwatch/step"
)

var (
	actionColor  = color.New(color.FgCyan)
	gatherColor  = color.New(color.Faint)
	failureColor = color.New(color.FgRed)
)

func getFmtCmd(root *rootCommand) *cobra.Command {
	var cmdFilter string

	fmtCmd := &cobra.Command{
		Use:   "fmt <log.jsonl>",
		Short: "pretty-print a step log",
		Long:  "Render each record of a JSONL step log as one readable line, colored by phase.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openLog(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

			scanner := bufio.NewScanner(in)
			lineNo := 0
			for scanner.Scan() {
				lineNo++
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				// Filter on the raw line first, so malformed records only
				// bother us when they would actually be shown.
				if cmdFilter != "" && gjson.GetBytes(line, "cmd").String() != cmdFilter {
					continue
				}

				var r step.Record
				if err := json.Unmarshal(line, &r); err != nil {
					root.logger.WithError(err).Warnf("skipping malformed record on line %d", lineNo)
					continue
				}

				text := r.String()
				if useColor {
					text = colorFor(r.Phase).Sprint(text)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			}
			return scanner.Err()
		},
	}

	fmtCmd.Flags().StringVar(&cmdFilter, "cmd", "", "only show records with this command token, e.g. click")
	return fmtCmd
}

func colorFor(p step.Phase) *color.Color {
	switch p {
	case step.BeforeAction, step.AfterAction:
		return actionColor
	case step.Failure:
		return failureColor
	default:
		return gatherColor
	}
}
