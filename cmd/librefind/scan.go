package main

import (
    "fmt"
    "os/signal"
    "syscall"

    "github.com/spf13/cobra"
    "go.uber.org/zap"

    "librefind/internal/adapters/inventory"
    "librefind/internal/services/dashboard"
    "librefind/internal/services/score"
)

func newScanCmd(a *app) *cobra.Command {
    var manifest string
    var watch bool
    cmd := &cobra.Command{
        Use:   "scan",
        Short: "Classify an exported inventory and print its sovereignty score",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            ctx := cmd.Context()
            kc, err := a.knowledge(ctx)
            if err != nil {
                return err
            }
            pipe, err := a.pipeline(kc)
            if err != nil {
                return err
            }
            src := inventory.NewManifestSource(manifest)

            if !watch {
                apps, err := pipe.Classify(ctx, src)
                if err != nil {
                    return err
                }
                printScan(a.out, apps, score.Compute(apps, a.thresholds()))
                return nil
            }

            ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
            defer stop()
            d := dashboard.New(pipe, src, a.thresholds(), a.log, func(s dashboard.State) {
                if s.Err != nil {
                    fmt.Fprintf(a.out, "scan failed: %v\n", s.Err)
                    return
                }
                printScan(a.out, s.Apps, *s.Score)
            })
            done := make(chan struct{})
            go func() {
                defer close(done)
                d.Run(ctx)
            }()
            err = src.Watch(ctx, d.Refresh, a.log)
            stop()
            <-done
            if err != nil {
                a.log.Warn("manifest watch stopped", zap.Error(err))
            }
            return err
        },
    }
    cmd.Flags().StringVarP(&manifest, "manifest", "m", "", "Path to the YAML inventory manifest")
    cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Rescan whenever the manifest changes")
    _ = cmd.MarkFlagRequired("manifest")
    return cmd
}
