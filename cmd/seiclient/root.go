package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pokt-network/poktroll/pkg/polylog"
	"github.com/spf13/cobra"

	"github.com/sei-protocol/sei-client-go/client"
	"github.com/sei-protocol/sei-client-go/codec"
)

const (
	flagConfig      = "config"
	flagConfigUsage = "Path to the client's YAML config file"
	defaultConfig   = "config.yaml"
)

// cli holds the state shared by the subcommands. It is populated by the
// root command's persistent pre-run.
type cli struct {
	out        io.Writer
	configPath string

	cfg    client.Config
	logger polylog.Logger
	client *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:   "seiclient",
		Short: "Query and transact with the distribution, gov and vesting modules",
		Long: `Query and transact with the distribution, gov and vesting modules of a Cosmos SDK chain.

Connection, signer and logging settings are read from the YAML file given by --config.
Every command prints its result as JSON.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, flagConfig, defaultConfig, flagConfigUsage)

	rootCmd.AddCommand(c.queryCmd())
	rootCmd.AddCommand(c.txCmd())
	rootCmd.AddCommand(c.watchCmd())

	return rootCmd
}

// connect loads the config and connects the client. It is the pre-run of
// every command that talks to a node.
func (c *cli) connect(cmd *cobra.Command, _ []string) error {
	cfg, err := client.LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = client.NewLogger(cfg.Logger, os.Stderr)

	c.client, err = client.New(c.logger, cfg)
	if err != nil {
		return err
	}
	cmd.SetContext(c.logger.WithContext(cmd.Context()))
	return nil
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// printJSON writes v to the command output as indented JSON. Protobuf
// messages are rendered as proto3 JSON.
func (c *cli) printJSON(v any) error {
	if msg, ok := v.(codec.Message); ok {
		bz, err := c.client.Store.Registry().MarshalJSON(msg)
		if err != nil {
			return fmt.Errorf("error encoding output: %w", err)
		}
		v = json.RawMessage(bz)
	}
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(bz))
	return err
}
