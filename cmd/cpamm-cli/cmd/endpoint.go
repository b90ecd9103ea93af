// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ava-labs/cpamm/utils"
)

func newEndpointCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "endpoint",
		Short: "Manage the default node endpoint",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <uri>",
			Short: "Use a remote node by default",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if _, err := url.ParseRequestURI(args[0]); err != nil {
					return err
				}
				h, err := r.keys()
				if err != nil {
					return err
				}
				return h.StoreDefaultEndpoint(args[0])
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Use the local database by default",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				h, err := r.keys()
				if err != nil {
					return err
				}
				return h.StoreDefaultEndpoint("")
			},
		},
		&cobra.Command{
			Use:   "get",
			Short: "Print the default endpoint",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				h, err := r.keys()
				if err != nil {
					return err
				}
				uri, err := h.GetDefaultEndpoint("")
				if err != nil {
					return err
				}
				if uri == "" {
					utils.Outf("{{yellow}}endpoint:{{/}} local database\n")
					return nil
				}
				utils.Outf("{{yellow}}endpoint:{{/}} %s\n", uri)
				return nil
			},
		},
	)
	return cmd
}
