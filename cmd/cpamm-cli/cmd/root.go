// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ava-labs/cpamm/chain"
	"github.com/ava-labs/cpamm/cli"
	"github.com/ava-labs/cpamm/cli/prompt"
	"github.com/ava-labs/cpamm/config"
	"github.com/ava-labs/cpamm/genesis"
	"github.com/ava-labs/cpamm/rpc"
	"github.com/ava-labs/cpamm/storage"
	"github.com/ava-labs/cpamm/trace"
	"github.com/ava-labs/cpamm/vm"
)

const (
	cliFolder = ".cpamm-cli"

	outputText = "text"
	outputJSON = "json"
)

type root struct {
	configPath string
	endpoint   string
	keysPath   string
	logLevel   string
	output     string
	yes        bool
	out        io.Writer

	cfg     *config.Config
	handler *cli.Handler
	logs    *logFactory
	log     logging.Logger
}

func NewRootCmd() *cobra.Command {
	r := &root{out: os.Stdout}
	cmd := &cobra.Command{
		Use:   "cpamm-cli",
		Short: "Operate a constant-product market maker",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			r.out = cmd.OutOrStdout()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.DisableAutoGenTag = true
	cmd.SilenceUsage = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.PersistentFlags().StringVar(&r.configPath, "config", "", "node config file (JSON)")
	cmd.PersistentFlags().StringVar(&r.endpoint, "endpoint", "", "node URI; the local database is used when empty")
	cmd.PersistentFlags().StringVar(&r.keysPath, "keys", path.Join(homeDir, cliFolder), "key store directory")
	cmd.PersistentFlags().StringVar(&r.logLevel, "log-level", "", "overrides the configured log level")
	cmd.PersistentFlags().StringVarP(&r.output, "output", "o", outputText, "output format (text or json)")
	cmd.PersistentFlags().BoolVarP(&r.yes, "yes", "y", false, "do not ask for confirmation")

	cmd.AddCommand(
		newKeyCmd(r),
		newEndpointCmd(r),
		newGenesisCmd(r),
		newPoolCmd(r),
		newQueryCmd(r),
		newRunCmd(r),
		newServeCmd(r),
		newWatchCmd(r),
		newPrometheusCmd(r),
	)

	closeAfter(cmd, r)
	return cmd
}

// closeAfter makes every command of the tree release the key store and the
// loggers when it returns.
func closeAfter(cmd *cobra.Command, r *root) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) (err error) {
			defer func() {
				err = errors.Join(err, r.close())
			}()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfter(sub, r)
	}
}

func (r *root) config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	cfg, err := config.Load(r.configPath)
	if err != nil {
		return nil, err
	}
	if r.logLevel != "" {
		cfg.LogLevel, err = logging.ToLevel(r.logLevel)
		if err != nil {
			return nil, err
		}
		cfg.LogDisplayLevel = cfg.LogLevel
	}
	r.cfg = cfg
	return cfg, nil
}

func (r *root) logger() (logging.Logger, error) {
	if r.log != nil {
		return r.log, nil
	}
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	loggingConfig := logging.Config{}
	loggingConfig.LogLevel = cfg.LogLevel
	loggingConfig.DisplayLevel = cfg.LogDisplayLevel
	loggingConfig.Directory = cfg.LogDir
	loggingConfig.LogFormat = logging.Plain
	loggingConfig.MaxSize = 8
	loggingConfig.MaxFiles = 5
	loggingConfig.MaxAge = 7

	r.logs = newLogFactory(loggingConfig)
	r.log, err = r.logs.Make("cpamm")
	if err != nil {
		r.logs.Close()
		r.logs = nil
		return nil, err
	}
	return r.log, nil
}

func (r *root) keys() (*cli.Handler, error) {
	if r.handler != nil {
		return r.handler, nil
	}
	h, err := cli.New(r.keysPath)
	if err != nil {
		return nil, err
	}
	r.handler = h
	return h, nil
}

func (r *root) factory() (chain.AuthFactory, error) {
	h, err := r.keys()
	if err != nil {
		return nil, err
	}
	return h.DefaultFactory()
}

// remote returns the --endpoint flag or the stored endpoint. It is empty
// when neither is set.
func (r *root) remote() (string, error) {
	if r.endpoint != "" {
		return r.endpoint, nil
	}
	h, err := r.keys()
	if err != nil {
		return "", err
	}
	return h.GetDefaultEndpoint("")
}

// node returns the remote node when an endpoint is set and otherwise opens
// the local database.
func (r *root) node(ctx context.Context) (backend, error) {
	endpoint, err := r.remote()
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		return &remoteBackend{rpc.NewJSONRPCClient(endpoint)}, nil
	}
	return r.openLocal(ctx, nil)
}

func (r *root) openLocal(ctx context.Context, gen *genesis.Genesis) (*localBackend, error) {
	cfg, err := r.config()
	if err != nil {
		return nil, err
	}
	log, err := r.logger()
	if err != nil {
		return nil, err
	}
	db, _, err := storage.New(cfg.Pebble, cfg.DatabasePath, "state")
	if err != nil {
		return nil, err
	}
	v, err := vm.New(ctx, cfg, log, trace.Noop(), db, prometheus.NewRegistry(), gen)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Debug("opened local database", zap.String("path", cfg.DatabasePath))
	return &localBackend{
		VM: v,
		close: func() error {
			if err := v.Close(); err != nil {
				return err
			}
			return db.Close()
		},
	}, nil
}

func (r *root) close() error {
	if r.logs != nil {
		r.logs.Close()
		r.logs = nil
		r.log = nil
	}
	if r.handler != nil {
		err := r.handler.CloseDatabase()
		r.handler = nil
		return err
	}
	return nil
}

// print writes [v] as indented JSON or runs [text].
func (r *root) print(v any, text func()) error {
	switch strings.ToLower(r.output) {
	case outputJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(r.out, string(b))
		return err
	case outputText:
		text()
		return nil
	default:
		return fmt.Errorf("%w: output %q", ErrInvalidArgs, r.output)
	}
}

// confirm asks before a state changing command unless --yes was passed.
func (r *root) confirm() error {
	if r.yes {
		return nil
	}
	ok, err := prompt.Continue()
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}
