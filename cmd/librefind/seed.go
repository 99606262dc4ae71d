package main

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"
    "gopkg.in/yaml.v3"

    "librefind/internal/domain"
)

// seedFile is the knowledge graph export loaded by `librefind seed`.
type seedFile struct {
    Targets   []domain.ProprietaryTarget `yaml:"targets"`
    Solutions []domain.Alternative       `yaml:"solutions"`
}

func newSeedCmd(a *app) *cobra.Command {
    return &cobra.Command{
        Use:   "seed FILE",
        Short: "Load proprietary targets and FOSS solutions from a YAML file",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            raw, err := os.ReadFile(args[0])
            if err != nil {
                return err
            }
            var seed seedFile
            if err := yaml.Unmarshal(raw, &seed); err != nil {
                return fmt.Errorf("parse %s: %w", args[0], err)
            }
            store, err := a.knowledgeStore(cmd.Context())
            if err != nil {
                return err
            }
            for _, s := range seed.Solutions {
                if err := store.PutSolution(cmd.Context(), s); err != nil {
                    return fmt.Errorf("solution %s: %w", s.ID, err)
                }
            }
            for _, t := range seed.Targets {
                if err := store.PutTarget(cmd.Context(), t); err != nil {
                    return fmt.Errorf("target %s: %w", t.PackageName, err)
                }
            }
            fmt.Fprintf(a.out, "seeded %d targets and %d solutions\n", len(seed.Targets), len(seed.Solutions))
            return nil
        },
    }
}

func newMigrateCmd(a *app) *cobra.Command {
    return &cobra.Command{
        Use:   "migrate",
        Short: "Apply database migrations to DATABASE_URL",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            db, err := a.postgres(cmd.Context())
            if err != nil {
                return err
            }
            if err := db.Migrate(cmd.Context()); err != nil {
                return err
            }
            fmt.Fprintln(a.out, "migrations applied")
            return nil
        },
    }
}
