package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/atstest"
	"github.com/hiredesk/hiredesk/pkg/config"
	"github.com/hiredesk/hiredesk/pkg/httpserver"
)

// runFakeAPI serves the in-memory HireDesk API for local development. State
// lives for the lifetime of the process.
func runFakeAPI(c *commandContext, args []string) error {
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	fs := flag.NewFlagSet("fake-api", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&srvCfg.Addr, "addr", srvCfg.Addr, "Listen address")
	seed := fs.Bool("seed", true, "Seed demo accounts and jobs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	api := atstest.New()
	if *seed {
		seedDemoData(api)
		fmt.Fprintln(os.Stdout, "Seeded demo accounts: alice/secret (candidate), bob/secret (employer)")
	}

	fmt.Fprintf(os.Stdout, "Serving HireDesk API on http://%s\n", srvCfg.Addr)
	return httpserver.New(srvCfg).Run(c.ctx, api.Handler())
}

func seedDemoData(api *atstest.Server) {
	api.SeedUser("alice", "secret", "alice@example.com", atsapi.RoleCandidate)
	api.SeedUser("bob", "secret", "bob@example.com", atsapi.RoleEmployer)

	api.SeedJob("bob", atsapi.JobRequest{
		Title:        "Backend Engineer",
		Description:  "Build and operate the hiring platform's API services.",
		Requirements: "Go, PostgreSQL, a pragmatic approach to distributed systems.",
		Location:     "Remote",
		SalaryRange:  "$120k-$160k",
		JobType:      "full_time",
		Status:       atsapi.JobStatusActive,
	})
	api.SeedJob("bob", atsapi.JobRequest{
		Title:       "Technical Recruiter",
		Description: "Own the candidate pipeline end to end.",
		Location:    "New York, NY",
		JobType:     "full_time",
		Status:      atsapi.JobStatusActive,
	})
}
