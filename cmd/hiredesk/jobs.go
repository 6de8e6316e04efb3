package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func runJobs(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	status := fs.String("status", "", "Filter by status: active, inactive, filled, expired")
	if err := fs.Parse(args); err != nil {
		return err
	}

	jobs, err := c.client.ListJobs(c.ctx, atsapi.ListJobsParams{Status: atsapi.JobStatus(*status)})
	if err != nil {
		return err
	}
	return renderJobs(jobs)
}

func runJob(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("job", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Job ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	job, err := c.client.GetJob(c.ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s (#%d)\n", job.Title, job.ID)
	fmt.Fprintf(os.Stdout, "Company:   %s\n", job.CompanyName)
	fmt.Fprintf(os.Stdout, "Location:  %s\n", job.Location)
	fmt.Fprintf(os.Stdout, "Type:      %s\n", job.JobType)
	fmt.Fprintf(os.Stdout, "Status:    %s\n", job.Status)
	fmt.Fprintf(os.Stdout, "Posted:    %s\n", job.PostedDate.Format("2006-01-02"))
	if job.SalaryRange != "" {
		fmt.Fprintf(os.Stdout, "Salary:    %s\n", job.SalaryRange)
	}
	if job.Deadline != nil {
		fmt.Fprintf(os.Stdout, "Deadline:  %s\n", job.Deadline.Format("2006-01-02"))
	}
	fmt.Fprintf(os.Stdout, "\n%s\n", job.Description)
	if job.Requirements != "" {
		fmt.Fprintf(os.Stdout, "\nRequirements:\n%s\n", job.Requirements)
	}
	return nil
}

func runSearch(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var params atsapi.SearchJobsParams
	fs.StringVar(&params.Search, "q", "", "Match against title, description and company name")
	fs.StringVar(&params.Location, "location", "", "Filter by location substring")
	fs.StringVar(&params.JobType, "type", "", "Filter by job type")
	if err := fs.Parse(args); err != nil {
		return err
	}

	jobs, err := c.client.SearchJobs(c.ctx, params)
	if err != nil {
		return err
	}
	return renderJobs(jobs)
}

func runPostJob(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	req, err := parseJobFlags("post-job", args)
	if err != nil {
		return err
	}
	if req.Title == "" || req.Description == "" || req.Location == "" {
		return errors.New("--title, --description and --location are required")
	}

	job, err := c.client.CreateJob(c.ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Posted job #%d: %s\n", job.ID, job.Title)
	return nil
}

func runUpdateJob(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("update-job", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Job ID (required)")
	req, err := parseJobFlagsInto(fs, args)
	if err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	job, err := c.client.UpdateJob(c.ctx, *id, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Updated job #%d: %s (%s)\n", job.ID, job.Title, job.Status)
	return nil
}

func runDeleteJob(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete-job", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Job ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("--id is required")
	}

	if err := c.client.DeleteJob(c.ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted job #%d\n", *id)
	return nil
}

func parseJobFlags(name string, args []string) (atsapi.JobRequest, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return parseJobFlagsInto(fs, args)
}

func parseJobFlagsInto(fs *flag.FlagSet, args []string) (atsapi.JobRequest, error) {
	var req atsapi.JobRequest
	var status, deadline string
	fs.StringVar(&req.Title, "title", "", "Job title")
	fs.StringVar(&req.Description, "description", "", "Job description")
	fs.StringVar(&req.Requirements, "requirements", "", "Job requirements")
	fs.StringVar(&req.Location, "location", "", "Job location")
	fs.StringVar(&req.SalaryRange, "salary", "", "Salary range")
	fs.StringVar(&req.JobType, "type", "", "Job type, e.g. full_time")
	fs.StringVar(&status, "status", "", "Status: active, inactive, filled, expired")
	fs.StringVar(&deadline, "deadline", "", "Application deadline (YYYY-MM-DD)")

	if err := fs.Parse(args); err != nil {
		return atsapi.JobRequest{}, err
	}

	req.Status = atsapi.JobStatus(status)
	if deadline != "" {
		t, err := time.Parse("2006-01-02", deadline)
		if err != nil {
			return atsapi.JobRequest{}, fmt.Errorf("invalid --deadline: %w", err)
		}
		req.Deadline = &t
	}
	return req, nil
}

func renderJobs(jobs []atsapi.Job) error {
	if len(jobs) == 0 {
		fmt.Fprintln(os.Stdout, "No jobs found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tCompany\tLocation\tType\tStatus\tPosted")
	for _, j := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.Title, j.CompanyName, j.Location, j.JobType, j.Status,
			j.PostedDate.Format("2006-01-02"))
	}
	return w.Flush()
}
