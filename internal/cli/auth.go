package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-donation-tracker/domain"
	"food-donation-tracker/internal/client"
	"food-donation-tracker/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"
)

var errPasswordRequired = errors.New("password required: pass --password, set TRACKER_PASSWORD or run in a terminal")

func registerCmd(s *state) *Command {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.StringP("username", "u", "", "username (3-50 characters)")
	email := fs.StringP("email", "e", "", "email address")
	password := fs.StringP("password", "p", "", "password (at least 8 characters); prompted when omitted")
	userType := fs.String("type", domain.RoleDonor, "account type: donor, organization or admin")

	return &Command{
		Flags: fs,
		Usage: "register -u <username> -e <email>",
		Short: "Create an account and log in",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			pw, err := s.readPassword(*password)
			if err != nil {
				return err
			}

			auth, err := s.client().Register(domain.RegisterRequest{
				Username: strings.TrimSpace(*username),
				Email:    strings.TrimSpace(*email),
				Password: pw,
				UserType: *userType,
			})
			if err != nil {
				return err
			}
			if err := s.begin(auth); err != nil {
				return err
			}

			o.Printf("Registered and logged in as %s (%s)\n", auth.User.Username, auth.User.UserType)
			return nil
		},
	}
}

func loginCmd(s *state) *Command {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.StringP("email", "e", "", "email address")
	password := fs.StringP("password", "p", "", "password; prompted when omitted")

	return &Command{
		Flags: fs,
		Usage: "login -e <email>",
		Short: "Log in and remember the session",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if strings.TrimSpace(*email) == "" {
				return errors.New("--email is required")
			}
			pw, err := s.readPassword(*password)
			if err != nil {
				return err
			}

			auth, err := s.client().Login(domain.LoginRequest{
				Email:    strings.TrimSpace(*email),
				Password: pw,
			})
			if err != nil {
				return err
			}
			if err := s.begin(auth); err != nil {
				return err
			}

			o.Printf("Logged in as %s\n", auth.User.Username)
			return nil
		},
	}
}

func logoutCmd(s *state) *Command {
	return &Command{
		Usage: "logout",
		Short: "Forget the saved session",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			if s.sessions.Current() == nil {
				o.Println("Not logged in")
				return nil
			}
			if err := s.sessions.End(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}
			o.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd(s *state) *Command {
	return &Command{
		Usage: "whoami",
		Short: "Show the logged in user",
		Long:  "Show the logged in user as reported by the server. An expired session is cleared.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			c, err := s.authedClient()
			if err != nil {
				return err
			}

			me, err := c.Me()
			if err != nil {
				var apiErr *client.APIError
				if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusUnauthorized {
					_ = s.sessions.End()
					return errors.New("session expired, run `tracker login` again")
				}
				return err
			}

			o.Printf("%s <%s> (%s)\n", me.Username, me.Email, me.UserType)
			return nil
		},
	}
}

func (s *state) begin(auth *domain.AuthResponse) error {
	err := s.sessions.Begin(session.Session{
		Token:    auth.Token,
		UserID:   auth.User.ID,
		Username: auth.User.Username,
		Email:    auth.User.Email,
		UserType: auth.User.UserType,
	})
	if err != nil {
		return fmt.Errorf("logged in but failed to save session: %w", err)
	}
	return nil
}

// readPassword prefers the flag, then TRACKER_PASSWORD, then a terminal prompt.
func (s *state) readPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := s.env["TRACKER_PASSWORD"]; v != "" {
		return v, nil
	}
	return s.password("Password: ")
}

func promptPassword(prompt string) (string, error) {
	if !liner.TerminalSupported() {
		return "", errPasswordRequired
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	pw, err := line.PasswordPrompt(prompt)
	switch {
	case errors.Is(err, liner.ErrPromptAborted):
		return "", errors.New("aborted")
	case errors.Is(err, liner.ErrNotTerminalOutput):
		return "", errPasswordRequired
	case err != nil:
		return "", err
	}
	return pw, nil
}
