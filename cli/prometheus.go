// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/cpamm/utils"
)

const fsModeWrite = 0o600

// Panels are the dashboard expressions for a node.
var Panels = []string{
	"increase(vm_txs_submitted[5s])/5",
	"sum by (reason) (increase(vm_txs_rejected[5s])/5)",
	"sum by (direction) (increase(vm_swaps[5s])/5)",
	"sum by (direction) (increase(vm_swap_volume_in[5s])/5)",
	"sum by (error) (increase(chain_txs_failed[5s])/5)",
	"increase(chain_execute_time_sum[5s])/1000000/5",
	"increase(chain_commit_time_sum[5s])/1000000/5",
	"increase(chain_state_changes[5s])/5",
	"chain_locks_held",
}

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// NewPrometheusConfig scrapes the metrics endpoint of every node in [uris].
func NewPrometheusConfig(uris []string) (*PrometheusConfig, error) {
	endpoints := make([]string, len(uris))
	for i, uri := range uris {
		u, err := url.Parse(uri)
		if err != nil {
			return nil, err
		}
		if len(u.Host) == 0 {
			return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidEndpoint, uri)
		}
		endpoints[i] = u.Host
	}

	var cfg PrometheusConfig
	cfg.Global.ScrapeInterval = "1s"
	cfg.Global.EvaluationInterval = "1s"
	cfg.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName: "cpamm",
			StaticConfigs: []*PrometheusStaticConfig{
				{Targets: endpoints},
			},
			MetricsPath: "/ext/metrics",
		},
	}
	return &cfg, nil
}

// DashboardURL links to a prometheus graph page showing [panels].
//
// Params are encoded by hand because prometheus skips panels that are not
// numerically sorted.
func DashboardURL(baseURI string, panels []string) string {
	dashboard := baseURI + "/graph"
	for i, panel := range panels {
		appendChar := "&"
		if i == 0 {
			appendChar = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", dashboard, appendChar, i, url.QueryEscape(panel), i, i, i)
	}
	return dashboard
}

// GeneratePrometheus writes a prometheus config scraping [uris] to
// [prometheusFile] and prints or opens the dashboard.
func GeneratePrometheus(baseURI string, uris []string, openBrowser bool, prometheusFile string, prometheusData string) error {
	cfg, err := NewPrometheusConfig(uris)
	if err != nil {
		return err
	}
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(prometheusFile, yamlData, fsModeWrite); err != nil {
		return err
	}

	dashboard := DashboardURL(baseURI, Panels)
	if !openBrowser {
		utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
		utils.Outf("{{green}}prometheus cmd:{{/}} prometheus --config.file=%s --storage.tsdb.path=%s\n", prometheusFile, prometheusData)
		return nil
	}
	return browser.OpenURL(dashboard)
}
