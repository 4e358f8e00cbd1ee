package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stepwatch/stepwatch/step"
)

// cmdStats aggregates the elapsed-step durations of one command.
type cmdStats struct {
	Cmd   string        `json:"cmd" yaml:"cmd"`
	Count int           `json:"count" yaml:"count"`
	Min   time.Duration `json:"min_ns" yaml:"min_ns"`
	Max   time.Duration `json:"max_ns" yaml:"max_ns"`
	Avg   time.Duration `json:"avg_ns" yaml:"avg_ns"`

	total time.Duration
}

func getStatsCmd(root *rootCommand) *cobra.Command {
	var format string

	statsCmd := &cobra.Command{
		Use:   "stats <log.jsonl>",
		Short: "aggregate step durations per command",
		Long:  "Read a JSONL step log and report count, min, avg and max elapsed time per command.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openLog(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = in.Close() }()

			byCmd := map[string]*cmdStats{}
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				if len(scanner.Bytes()) == 0 {
					continue
				}
				var r step.Record
				if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
					root.logger.WithError(err).Warn("skipping malformed record")
					continue
				}
				if !r.ElapsedStep.Valid {
					continue
				}
				s := byCmd[r.Cmd.Token()]
				if s == nil {
					s = &cmdStats{Cmd: r.Cmd.Token(), Min: r.ElapsedStep.Duration}
					byCmd[r.Cmd.Token()] = s
				}
				d := r.ElapsedStep.Duration
				s.Count++
				s.total += d
				if d < s.Min {
					s.Min = d
				}
				if d > s.Max {
					s.Max = d
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			all := make([]*cmdStats, 0, len(byCmd))
			for _, s := range byCmd {
				s.Avg = s.total / time.Duration(s.Count)
				all = append(all, s)
			}
			sort.Slice(all, func(i, j int) bool { return all[i].Cmd < all[j].Cmd })

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				for _, s := range all {
					fmt.Fprintf(out, "%-24s count=%d min=%s avg=%s max=%s\n",
						s.Cmd, s.Count, s.Min, s.Avg, s.Max)
				}
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(all)
			case "yaml":
				data, err := yaml.Marshal(all)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unknown stats format %q", format)
			}
		},
	}

	statsCmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json or yaml)")
	return statsCmd
}
