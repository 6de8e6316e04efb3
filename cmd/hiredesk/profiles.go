package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func runProfile(c *commandContext, args []string) error {
	if _, err := c.requireUser(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.Int("id", 0, "Profile ID (defaults to your own)")
	company := fs.String("company", "", "Set company name")
	phone := fs.String("phone", "", "Set phone number")
	address := fs.String("address", "", "Set address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profile, err := resolveProfile(c, *id)
	if err != nil {
		return err
	}

	if *company != "" || *phone != "" || *address != "" {
		profile, err = c.client.UpdateProfile(c.ctx, profile.ID, atsapi.ProfileUpdate{
			CompanyName: *company,
			PhoneNumber: *phone,
			Address:     *address,
		})
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stdout, "%s <%s>\n", profile.User.Username, profile.User.Email)
	fmt.Fprintf(os.Stdout, "Role:     %s\n", profile.Role)
	if profile.CompanyName != "" {
		fmt.Fprintf(os.Stdout, "Company:  %s\n", profile.CompanyName)
	}
	if profile.PhoneNumber != "" {
		fmt.Fprintf(os.Stdout, "Phone:    %s\n", profile.PhoneNumber)
	}
	if profile.Address != "" {
		fmt.Fprintf(os.Stdout, "Address:  %s\n", profile.Address)
	}
	return nil
}

// resolveProfile fetches a profile by ID, or the caller's own when id is
// zero. Non-admin accounts only ever see their own in the listing.
func resolveProfile(c *commandContext, id int) (*atsapi.Profile, error) {
	if id > 0 {
		return c.client.GetProfile(c.ctx, id)
	}
	profiles, err := c.client.ListProfiles(c.ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no profile found for the current account")
	}
	return &profiles[0], nil
}

func runDashboard(c *commandContext, args []string) error {
	user, err := c.requireUser()
	if err != nil {
		return err
	}

	switch user.Role {
	case atsapi.RoleEmployer:
		return renderEmployerDashboard(c)
	default:
		return renderCandidateDashboard(c)
	}
}

func renderCandidateDashboard(c *commandContext) error {
	d, err := c.client.GetCandidateDashboard(c.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Candidate dashboard")
	renderStats(d.Stats)

	if len(d.Applications) > 0 {
		fmt.Fprintln(os.Stdout, "\nRecent applications:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tJob\tStatus\tApplied")
		for _, a := range d.Applications {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				a.ID, a.JobTitle, a.Status, a.ApplicationDate.Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if len(d.Resumes) > 0 {
		fmt.Fprintf(os.Stdout, "\nResumes on file: %d\n", len(d.Resumes))
	}
	return nil
}

func renderEmployerDashboard(c *commandContext) error {
	d, err := c.client.GetEmployerDashboard(c.ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Employer dashboard")
	renderStats(d.Stats)

	if len(d.Jobs) > 0 {
		fmt.Fprintln(os.Stdout, "\nYour postings:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTitle\tStatus\tPosted")
		for _, j := range d.Jobs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				j.ID, j.Title, j.Status, j.PostedDate.Format("2006-01-02"))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func renderStats(s atsapi.DashboardStats) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Metric\tCount")
	fmt.Fprintf(w, "Total applications\t%d\n", s.TotalApplications)
	fmt.Fprintf(w, "Pending\t%d\n", s.PendingApplications)
	fmt.Fprintf(w, "Reviewed\t%d\n", s.ReviewedApplications)
	if s.ShortlistedApplications > 0 {
		fmt.Fprintf(w, "Shortlisted\t%d\n", s.ShortlistedApplications)
	}
	if s.InterviewApplications > 0 {
		fmt.Fprintf(w, "Interview\t%d\n", s.InterviewApplications)
	}
	w.Flush()
}
