package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/config"
)

// outputFormat is a pflag.Value restricted to the formats adapters can print.
type outputFormat string

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch v {
	case "table", "json", "yaml":
		*f = outputFormat(v)
		return nil
	}
	return fmt.Errorf("must be one of table, json, yaml")
}

func (f *outputFormat) Type() string { return "format" }

var adaptersOutput outputFormat = "table"

func init() {
	rootCmd.AddCommand(newAdaptersCmd())
}

func newAdaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "Show the project type to toolchain dispatch matrix",
		Long: `Prints every known project type with its required binaries and the
command template used for each action, after applying any configured
overrides. The matrix is data; this is the authoritative view of it.`,
		Args: cobra.NoArgs,
		RunE: runAdapters,
	}
	cmd.Flags().VarP(&adaptersOutput, "output", "o", "Output format: table, json or yaml")
	return cmd
}

// adapterInfo is the serializable view of one adapter row.
type adapterInfo struct {
	Type     string            `json:"type" yaml:"type"`
	Requires []string          `json:"requires" yaml:"requires"`
	Commands map[string]string `json:"commands" yaml:"commands"`
}

func runAdapters(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig, dir)
	if err != nil {
		return err
	}
	registry, err := adapter.NewRegistry(cfg.Overrides())
	if err != nil {
		return err
	}
	return renderAdapters(os.Stdout, adapterRows(registry), adaptersOutput)
}

// adapterRows flattens the registry into serializable rows, one per project
// type, in detector order.
func adapterRows(registry *adapter.Registry) []adapterInfo {
	var rows []adapterInfo
	for _, a := range registry.Adapters() {
		commands := make(map[string]string, len(a.Commands))
		for _, action := range adapter.Actions() {
			spec, ok := a.Command(action)
			if !ok {
				continue
			}
			if spec.Noop {
				commands[string(action)] = "noop"
			} else {
				commands[string(action)] = strings.Join(spec.Argv, " ")
			}
		}
		rows = append(rows, adapterInfo{
			Type:     string(a.Type),
			Requires: a.Requires,
			Commands: commands,
		})
	}
	return rows
}

func renderAdapters(out io.Writer, rows []adapterInfo, format outputFormat) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(rows)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TYPE\tREQUIRES\tBUILD\tRUN\tRELEASE\tLINT")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Type,
				strings.Join(row.Requires, ", "),
				cell(row.Commands, "build"),
				cell(row.Commands, "run"),
				cell(row.Commands, "release"),
				cell(row.Commands, "lint"),
			)
		}
		return w.Flush()
	}
	return nil
}

func cell(commands map[string]string, action string) string {
	if c, ok := commands[action]; ok {
		return c
	}
	return "-"
}
