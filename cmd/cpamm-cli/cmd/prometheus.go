// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/cli"
)

func newPrometheusCmd(r *root) *cobra.Command {
	var (
		baseURI        string
		openBrowser    bool
		prometheusFile string
		prometheusData string
	)
	cmd := &cobra.Command{
		Use:   "prometheus [uri...]",
		Short: "Write a prometheus config scraping nodes and print a dashboard",
		Long:  "Write a prometheus config scraping the given nodes, or the default endpoint when none are given.",
		RunE: func(_ *cobra.Command, args []string) error {
			uris := args
			if len(uris) == 0 {
				uri, err := r.remote()
				if err != nil {
					return err
				}
				if uri == "" {
					cfg, err := r.config()
					if err != nil {
						return err
					}
					uri = "http://" + cfg.HTTPAddress
				}
				uris = []string{uri}
			}
			return cli.GeneratePrometheus(baseURI, uris, openBrowser, prometheusFile, prometheusData)
		},
	}
	cmd.Flags().StringVar(&baseURI, "prometheus-base-uri", "http://localhost:9090", "prometheus server location")
	cmd.Flags().BoolVar(&openBrowser, "prometheus-open-browser", false, "open the dashboard in a browser")
	cmd.Flags().StringVar(&prometheusFile, "prometheus-file", "/tmp/prometheus.yaml", "prometheus config file")
	cmd.Flags().StringVar(&prometheusData, "prometheus-data", "/tmp/prometheus", "prometheus data directory")
	return cmd
}
