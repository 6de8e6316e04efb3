package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hiredesk/hiredesk/pkg/atsapi"
)

func runLogin(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	username := fs.String("username", "", "Account username (required)")
	password := fs.String("password", "", "Account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*username) == "" {
		return errors.New("--username is required")
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptPassword("Password: ")
		if err != nil {
			return err
		}
	}

	res := c.session.Login(c.ctx, *username, pw)
	if !res.Success {
		return errors.New(res.Error)
	}

	user := c.session.State().User
	fmt.Fprintf(os.Stdout, "Logged in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func runLogout(c *commandContext, args []string) error {
	c.session.Logout(c.ctx)
	fmt.Fprintln(os.Stdout, "Logged out")
	return nil
}

func runRegister(c *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var req atsapi.RegisterRequest
	var role string
	fs.StringVar(&req.Username, "username", "", "Account username (required)")
	fs.StringVar(&req.Email, "email", "", "Account email (required)")
	fs.StringVar(&req.Password, "password", "", "Account password (prompted when omitted)")
	fs.StringVar(&role, "role", string(atsapi.RoleCandidate), "Account role: candidate or employer")
	fs.StringVar(&req.CompanyName, "company", "", "Company name (employer)")
	fs.StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	fs.StringVar(&req.Address, "address", "", "Address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" {
		return errors.New("--username and --email are required")
	}
	req.Role = atsapi.Role(role)
	if req.Role != atsapi.RoleCandidate && req.Role != atsapi.RoleEmployer {
		return fmt.Errorf("invalid role %q: must be candidate or employer", role)
	}

	if req.Password == "" {
		pw, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		req.Password = pw
	}

	res := c.session.Register(c.ctx, req)
	if !res.Success {
		return errors.New(res.Error)
	}

	fmt.Fprintf(os.Stdout, "Account %s created; run `hiredesk login` to sign in\n", req.Username)
	return nil
}

func runWhoami(c *commandContext, args []string) error {
	st := c.session.State()
	if st.User == nil {
		fmt.Fprintln(os.Stdout, "Not logged in")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%s <%s> role=%s id=%d\n", st.User.Username, st.User.Email, st.User.Role, st.User.ID)
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}
