package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ivaflow/flowcore/ai/rules"
	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/config"
	"github.com/ivaflow/flowcore/flow/engine"
	"github.com/ivaflow/flowcore/flow/events"
	"github.com/ivaflow/flowcore/flow/handler"
	"github.com/ivaflow/flowcore/flow/metrics"
	"github.com/ivaflow/flowcore/flow/session"
	"github.com/ivaflow/flowcore/flow/session/memstore"
	"github.com/ivaflow/flowcore/flow/session/sqlstore"
	"github.com/ivaflow/flowcore/knowledge/keyword"
	"github.com/ivaflow/flowcore/tools/httptool"
)

func newRunCmd() *cobra.Command {
	var envFile, storePath string

	cmd := &cobra.Command{
		Use:   "run <flow.json>",
		Short: "Start an interactive session against a flow definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFlow(args[0])
			if err != nil {
				return err
			}

			cfg := config.Load(envFile)

			store, err := openStore(storePath)
			if err != nil {
				return err
			}

			bus := events.New()
			out := cmd.OutOrStdout()
			bus.Subscribe(func(ev events.Event) {
				if ev.Kind == events.KindMessageSent {
					fmt.Fprintf(out, "bot> %v\n", ev.Meta["message"])
				}
				if cfg.Debug {
					fmt.Fprintf(cmd.ErrOrStderr(), "[%s] node=%s\n", ev.Kind, ev.NodeID)
				}
			})

			eng, err := engine.New(f, engine.Options{
				MaxSteps:             cfg.MaxSteps,
				DefaultToolTimeoutMS: cfg.DefaultToolTimeoutMS,
				Store:                store,
				Bus:                  bus,
				Metrics:              metrics.New(prometheus.NewRegistry()),
				Services: handler.Services{
					AI:        rules.New(nil),
					Knowledge: keyword.New(nil),
					Tool:      httptool.New(f.Tools),
				},
			})
			if err != nil {
				return fmt.Errorf("constructing engine: %w", err)
			}

			return repl(cmd, eng)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "optional .env file read by flow/config")
	cmd.Flags().StringVar(&storePath, "store", "", "session store: empty for in-memory, or a SQLite file path")
	return cmd
}

func openStore(path string) (session.Store, error) {
	if path == "" {
		return memstore.New(), nil
	}
	return sqlstore.New(path)
}

func repl(cmd *cobra.Command, eng *engine.Engine) error {
	ctx := context.Background()

	sess, err := eng.StartSession(ctx)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for !sess.Status.Terminal() {
		if sess.Status != flow.StatusWaitingInput {
			break
		}
		fmt.Fprint(cmd.OutOrStdout(), "you> ")
		if !scanner.Scan() {
			break
		}
		sess, err = eng.ProcessInput(ctx, sess.ID, scanner.Text())
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "session %s ended with status %s\n", sess.ID, sess.Status)
	return nil
}
