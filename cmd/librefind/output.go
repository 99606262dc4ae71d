package main

import (
    "fmt"
    "io"
    "strconv"
    "text/tabwriter"

    "librefind/internal/domain"
)

func newTable(w io.Writer) *tabwriter.Writer {
    return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s *string) string {
    if s == nil || *s == "" {
        return "-"
    }
    return *s
}

func printScan(w io.Writer, apps []domain.ClassifiedApp, s domain.SovereigntyScore) {
    tw := newTable(w)
    fmt.Fprintln(tw, "STATUS\tPACKAGE\tLABEL\tINSTALLER\tALTERNATIVES")
    for _, app := range apps {
        alts := "-"
        if app.Status == domain.StatusProprietary {
            alts = strconv.Itoa(app.KnownAlternatives)
        }
        fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", app.Status, app.PackageName, app.Label, orDash(app.Installer), alts)
    }
    _ = tw.Flush()
    fmt.Fprintf(w, "\n%.1f%% FOSS (%d of %d apps, %d proprietary, %d unknown): %s\n",
        s.Percentage, s.FossCount, s.TotalApps, s.ProprietaryCount, s.UnknownCount, s.Level)
}

func printAlternatives(w io.Writer, alts []domain.Alternative) {
    tw := newTable(w)
    fmt.Fprintln(tw, "ID\tNAME\tLICENSE\tREPO\tPRIVACY\tUSABILITY\tSCORE")
    for _, a := range alts {
        repo := a.RepoDomain()
        fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n", a.ID, a.Name, a.License, orDash(&repo),
            a.PrivacyVotes(), a.UsabilityVotes(), a.TotalScore())
    }
    _ = tw.Flush()
}

func printSubmissions(w io.Writer, subs []domain.Submission) {
    tw := newTable(w)
    fmt.Fprintln(tw, "ID\tTARGET\tALTERNATIVE\tSTATUS\tSUBMITTED")
    for _, s := range subs {
        fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.ProprietaryPackage, s.AlternativeID, s.Status,
            s.Timestamp.Format("2006-01-02 15:04"))
    }
    _ = tw.Flush()
}
