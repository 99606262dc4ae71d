package main

import (
    "errors"
    "fmt"

    "github.com/spf13/cobra"
)

func newAlternativesCmd(a *app) *cobra.Command {
    return &cobra.Command{
        Use:   "alternatives PACKAGE",
        Short: "List FOSS alternatives to a proprietary package, best rated first",
        Args:  cobra.ExactArgs(1),
        RunE: func(cmd *cobra.Command, args []string) error {
            kc, err := a.knowledge(cmd.Context())
            if err != nil {
                return err
            }
            alts := kc.AlternativesFor(cmd.Context(), args[0])
            if len(alts) == 0 {
                fmt.Fprintf(a.out, "no known alternatives for %s\n", args[0])
                return nil
            }
            printAlternatives(a.out, alts)
            return nil
        },
    }
}

func newProposeCmd(a *app) *cobra.Command {
    var user string
    cmd := &cobra.Command{
        Use:   "propose PACKAGE ALTERNATIVE",
        Short: "Propose an alternative for a proprietary package",
        Args:  cobra.ExactArgs(2),
        RunE: func(cmd *cobra.Command, args []string) error {
            kc, err := a.knowledge(cmd.Context())
            if err != nil {
                return err
            }
            if !kc.SubmitProposal(cmd.Context(), args[0], args[1], user) {
                return errors.New("proposal was not recorded")
            }
            fmt.Fprintf(a.out, "proposed %s as an alternative to %s\n", args[1], args[0])
            return nil
        },
    }
    cmd.Flags().StringVarP(&user, "user", "u", "", "Submitting user id")
    _ = cmd.MarkFlagRequired("user")
    return cmd
}

func newVoteCmd(a *app) *cobra.Command {
    var user string
    cmd := &cobra.Command{
        Use:   "vote ALTERNATIVE CATEGORY",
        Short: "Vote for an alternative in a category such as privacy or usability",
        Args:  cobra.ExactArgs(2),
        RunE: func(cmd *cobra.Command, args []string) error {
            kc, err := a.knowledge(cmd.Context())
            if err != nil {
                return err
            }
            if !kc.VoteForAlternative(cmd.Context(), args[0], args[1], user) {
                return errors.New("vote was not recorded")
            }
            fmt.Fprintf(a.out, "voted for %s (%s)\n", args[0], args[1])
            return nil
        },
    }
    cmd.Flags().StringVarP(&user, "user", "u", "", "Voting user id")
    _ = cmd.MarkFlagRequired("user")
    return cmd
}

func newSubmissionsCmd(a *app) *cobra.Command {
    var user string
    cmd := &cobra.Command{
        Use:   "submissions",
        Short: "List a user's proposals, newest first",
        Args:  cobra.NoArgs,
        RunE: func(cmd *cobra.Command, args []string) error {
            kc, err := a.knowledge(cmd.Context())
            if err != nil {
                return err
            }
            subs := kc.ListSubmissions(cmd.Context(), user)
            if len(subs) == 0 {
                fmt.Fprintln(a.out, "no submissions")
                return nil
            }
            printSubmissions(a.out, subs)
            return nil
        },
    }
    cmd.Flags().StringVarP(&user, "user", "u", "", "User id")
    _ = cmd.MarkFlagRequired("user")
    return cmd
}
