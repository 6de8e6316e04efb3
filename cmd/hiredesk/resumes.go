package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func runResumes(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	resumes, err := c.client.ListResumes(c.ctx)
	if err != nil {
		return err
	}
	if len(resumes) == 0 {
		fmt.Fprintln(os.Stdout, "No resumes found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tFile\tUploaded\tActive")
	for _, r := range resumes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
			r.ID, r.Title, r.File, r.UploadDate.Format("2006-01-02"), r.IsActive)
	}
	return w.Flush()
}

func runAddResume(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("add-resume", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var req atsapi.ResumeRequest
	fs.StringVar(&req.Title, "title", "", "Resume title (required)")
	fs.StringVar(&req.File, "file", "", "Resume file URL (required)")
	fs.BoolVar(&req.IsActive, "active", true, "Mark the resume active")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.Title == "" || req.File == "" {
		return errors.New("--title and --file are required")
	}

	resume, err := c.client.CreateResume(c.ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added resume #%d: %s\n", resume.ID, resume.Title)
	return nil
}

func runDeleteResume(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete-resume", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Resume ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	if err := c.client.DeleteResume(c.ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted resume #%d\n", *id)
	return nil
}
