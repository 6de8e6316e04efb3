package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func runApply(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var req atsapi.ApplicationRequest
	resumeID := fs.Int("resume", 0, "Resume ID to attach")
	fs.IntVar(&req.Job, "job", 0, "Job ID (required)")
	fs.StringVar(&req.CoverLetter, "cover-letter", "", "Cover letter text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Job <= 0 {
		return errors.New("--job is required")
	}
	if *resumeID > 0 {
		req.Resume = resumeID
	}

	app, err := c.client.CreateApplication(c.ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Applied to %s (application #%d, status %s)\n", app.JobTitle, app.ID, app.Status)
	return nil
}

func runApplications(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	apps, err := c.client.ListApplications(c.ctx)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(os.Stdout, "No applications found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tJob\tCandidate\tStatus\tApplied\tUpdated")
	for _, a := range apps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.JobTitle, a.CandidateName, a.Status,
			a.ApplicationDate.Format("2006-01-02"),
			a.LastUpdated.Format("2006-01-02"))
	}
	return w.Flush()
}

func runReview(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Application ID (required)")
	status := fs.String("status", "", "New status: pending, reviewed, shortlisted, rejected, interview, offered, hired")
	notes := fs.String("notes", "", "Employer notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}
	if *status == "" && *notes == "" {
		return errors.New("at least one of --status or --notes is required")
	}

	app, err := c.client.UpdateApplication(c.ctx, *id, atsapi.ApplicationUpdate{
		Status:        atsapi.ApplicationStatus(*status),
		EmployerNotes: *notes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Application #%d is now %s\n", app.ID, app.Status)
	return nil
}
