package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"calc/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var (
	versionFormat   string
	versionShowFull bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "print unknown build metadata too")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show calc build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		colorFlag, _ := cmd.Flags().GetString("color")
		out := cmd.OutOrStdout()
		switch strings.ToLower(versionFormat) {
		case "json":
			return renderVersionJSON(out)
		case "pretty":
			colored, err := resolveColor(colorFlag)
			if err != nil {
				return err
			}
			renderVersionPretty(out, colored)
			return nil
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}

func renderVersionPretty(out io.Writer, colored bool) {
	fmt.Fprint(out, version.Banner(colored))
	if !versionShowFull {
		return
	}
	if version.GitCommit == "" {
		fmt.Fprintln(out, "commit: unknown")
	}
	if version.BuildDate == "" {
		fmt.Fprintln(out, "built:  unknown")
	}
}

func renderVersionJSON(out io.Writer) error {
	payload := versionPayload{
		Tool:      "calc",
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildDate: version.BuildDate,
	}
	if versionShowFull {
		payload.GitCommit = valueOrUnknown(payload.GitCommit)
		payload.BuildDate = valueOrUnknown(payload.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}
