package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/criticalsnake/tracks-backend-go/internal/auth"
	"github.com/criticalsnake/tracks-backend-go/internal/config"
	"github.com/criticalsnake/tracks-backend-go/internal/dataset"
	"github.com/criticalsnake/tracks-backend-go/internal/export"
	"github.com/criticalsnake/tracks-backend-go/internal/logging"
	"github.com/criticalsnake/tracks-backend-go/internal/models"
	"github.com/criticalsnake/tracks-backend-go/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "snaketracks",
		Short:         "Reconstruct ride tracks from position snapshots",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newTokenCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		geoJSON    bool
		simplify   float64
		pretty     bool
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "run [dataset.json]",
		Short: "Reconstruct tracks from a dataset file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs go to stderr so stdout carries only the result.
			defer logging.InitWriter(cmd.ErrOrStderr(), logFile).Close()

			pipeline := config.DefaultPipelineConfig()
			if configPath != "" {
				var err error
				if pipeline, err = config.LoadPipelineConfig(configPath); err != nil {
					return err
				}
			}
			opts, err := pipeline.Options()
			if err != nil {
				return err
			}

			ds, err := readDataset(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			rec, err := service.NewTrackService(nil, opts).Reconstruct(ds)
			if err != nil {
				return err
			}

			var out any = rec
			if geoJSON {
				fc := export.FeatureCollection(rec.Tracks)
				export.Simplify(fc, simplify)
				out = fc
			}
			return writeJSON(cmd.OutOrStdout(), out, pretty)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "pipeline config YAML file")
	cmd.Flags().BoolVar(&geoJSON, "geojson", false, "print a GeoJSON FeatureCollection instead of the full result")
	cmd.Flags().Float64Var(&simplify, "simplify", 0, "GeoJSON simplification tolerance in meters")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output")
	cmd.Flags().StringVar(&logFile, "log-file", "", "also write logs to this rotated file")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for snapshot ingestion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			token, err := auth.IssueToken(secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default $JWT_SECRET)")
	cmd.Flags().StringVar(&subject, "subject", "ingest", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 30*24*time.Hour, "token lifetime, 0 for none")
	return cmd
}

func readDataset(stdin io.Reader, args []string) (models.Dataset, error) {
	if len(args) == 1 && args[0] != "-" {
		return dataset.LoadFile(args[0])
	}
	return dataset.Read(stdin)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
