package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
	"github.com/hiredesk/hiredesk/pkg/credstore"
	"github.com/hiredesk/hiredesk/pkg/logger"
	"github.com/hiredesk/hiredesk/pkg/session"
)

type commandFn func(c *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

// commandContext carries the wired application stack into command handlers.
// The session manager is bootstrapped before any command runs, so commands
// observe restored sessions the same way a fresh process does.
type commandContext struct {
	ctx     context.Context
	cfg     appConfig
	client  *atsapi.Client
	session *session.Manager
}

func main() {
	cfg, err := loadAppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hiredesk: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewFromConfig(logger.Config{Level: cfg.LogLevel, Format: logger.Format(cfg.LogFormat)})

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmdName)
		printUsage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := credstore.NewFileStore(cfg.CredentialsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hiredesk: open credential store: %v\n", err)
		os.Exit(1)
	}
	source := atsapi.NewCredentialSource()
	client, err := atsapi.New(
		atsapi.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.Timeout},
		atsapi.WithTokenSource(source),
		atsapi.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hiredesk: %v\n", err)
		os.Exit(1)
	}
	mgr := session.NewManager(store, client, source, session.WithLogger(log))
	mgr.Bootstrap(ctx)

	c := &commandContext{ctx: ctx, cfg: cfg, client: client, session: mgr}
	if err := cmd.run(c, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "hiredesk %s: %v\n", cmdName, err)
		os.Exit(1)
	}
}

func commands() map[string]command {
	return map[string]command{
		"login":         {"login", "Authenticate and store the session locally", runLogin},
		"logout":        {"logout", "Clear the stored session", runLogout},
		"register":      {"register", "Create a new account", runRegister},
		"whoami":        {"whoami", "Show the current session", runWhoami},
		"jobs":          {"jobs", "List job postings", runJobs},
		"job":           {"job", "Show one job posting", runJob},
		"search":        {"search", "Search active job postings", runSearch},
		"post-job":      {"post-job", "Create a job posting (employer)", runPostJob},
		"update-job":    {"update-job", "Update a job posting (employer)", runUpdateJob},
		"delete-job":    {"delete-job", "Delete a job posting (employer)", runDeleteJob},
		"apply":         {"apply", "Apply to a job (candidate)", runApply},
		"applications":  {"applications", "List visible applications", runApplications},
		"review":        {"review", "Update an application's status or notes (employer)", runReview},
		"resumes":       {"resumes", "List your resumes (candidate)", runResumes},
		"add-resume":    {"add-resume", "Register a resume (candidate)", runAddResume},
		"delete-resume": {"delete-resume", "Delete a resume (candidate)", runDeleteResume},
		"profile":       {"profile", "Show or update a profile", runProfile},
		"dashboard":     {"dashboard", "Show the role-specific dashboard", runDashboard},
		"fake-api":      {"fake-api", "Serve an in-memory HireDesk API for local development", runFakeAPI},
	}
}

func printUsage() {
	fmt.Fprintf(os.Stdout, "Usage: hiredesk <command> [flags]\n\nAvailable commands:\n")
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stdout, "  %-16s %s\n", name, cmds[name].description)
	}
}

// requireUser fails a command early when no session is established, instead
// of letting the server's 401 surface as a generic request error.
func (c *commandContext) requireUser() (*atsapi.User, error) {
	st := c.session.State()
	if st.User == nil {
		return nil, fmt.Errorf("not logged in; run `hiredesk login` first")
	}
	return st.User, nil
}
