// Package cli implements the tracker command line client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"food-donation-tracker/internal/client"
	"food-donation-tracker/pkg/session"

	flag "github.com/spf13/pflag"
)

const (
	defaultServer = "http://localhost:8080"
	appDirName    = "food-donation-tracker"
)

var errNotLoggedIn = errors.New("not logged in, run `tracker login` first")

// state is shared by every command of one invocation.
type state struct {
	server   string
	sessions *session.Manager
	env      map[string]string
	password func(prompt string) (string, error)
}

// client returns an API client, authenticated when a session exists.
func (s *state) client() *client.Client {
	c := client.New(s.server)
	if current := s.sessions.Current(); current != nil {
		return c.WithToken(current.Token)
	}
	return c
}

func (s *state) authedClient() (*client.Client, error) {
	if s.sessions.Current() == nil {
		return nil, errNotLoggedIn
	}
	return s.client(), nil
}

// Run is the tracker entry point. Returns the exit code.
func Run(ctx context.Context, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(out, errOut)

	global := flag.NewFlagSet("tracker", flag.ContinueOnError)
	global.SetInterspersed(false)
	global.SetOutput(io.Discard)
	server := global.StringP("server", "s", envOr(env, "TRACKER_SERVER", defaultServer), "API base URL")
	sessionDir := global.String("session-dir", env["TRACKER_SESSION_DIR"], "directory holding the saved login")
	help := global.BoolP("help", "h", false, "show help")

	if len(args) > 0 {
		args = args[1:]
	}
	if err := global.Parse(args); err != nil {
		o.ErrPrintln("error:", err)
		printUsage(NewIO(errOut, errOut), global, nil)
		return 1
	}

	dir := *sessionDir
	if dir == "" {
		var err error
		if dir, err = defaultSessionDir(); err != nil {
			o.ErrPrintln("error:", err)
			return 1
		}
	}

	st := &state{
		server:   strings.TrimRight(*server, "/"),
		sessions: session.NewManager(session.NewFileStore(dir)),
		env:      env,
		password: promptPassword,
	}
	return st.run(ctx, o, global, *help)
}

func (s *state) run(ctx context.Context, o *IO, global *flag.FlagSet, help bool) int {
	commands := s.commands()

	rest := global.Args()
	if help || len(rest) == 0 {
		printUsage(o, global, commands)
		return 0
	}

	cmd, args := lookup(commands, rest)
	if cmd == nil {
		o.ErrPrintln("error: unknown command:", strings.Join(rest, " "))
		printUsage(NewIO(o.errOut, o.errOut), global, commands)
		return 1
	}

	if err := s.sessions.Init(); err != nil {
		o.ErrPrintln("warning: discarded unreadable session:", err)
	}

	return cmd.Run(ctx, o, args)
}

func (s *state) commands() []*Command {
	return []*Command{
		registerCmd(s),
		loginCmd(s),
		logoutCmd(s),
		whoamiCmd(s),
		donationsListCmd(s),
		donationsAddCmd(s),
		donationsStatusCmd(s),
		donationsStatsCmd(s),
		foodListCmd(s),
		foodAddCmd(s),
		foodExpiringCmd(s),
		orgsCmd(s),
		dashboardCmd(s),
	}
}

// lookup prefers the longest command name matching the leading words.
func lookup(commands []*Command, words []string) (*Command, []string) {
	var best *Command
	bestLen := 0
	for _, cmd := range commands {
		name := strings.Fields(cmd.Name())
		if len(name) > len(words) || len(name) <= bestLen {
			continue
		}
		match := true
		for i := range name {
			if name[i] != words[i] {
				match = false
				break
			}
		}
		if match {
			best, bestLen = cmd, len(name)
		}
	}
	if best == nil {
		return nil, nil
	}
	return best, words[bestLen:]
}

func printUsage(o *IO, global *flag.FlagSet, commands []*Command) {
	o.Println("tracker - food donation tracker client")
	o.Println()
	o.Println("Usage: tracker [global flags] <command> [args]")
	o.Println()
	if len(commands) > 0 {
		o.Println("Commands:")
		for _, cmd := range commands {
			o.Println(cmd.HelpLine())
		}
		o.Println()
	}
	o.Println("Global flags:")

	var buf strings.Builder
	global.SetOutput(&buf)
	global.PrintDefaults()
	global.SetOutput(io.Discard)
	o.Printf("%s", buf.String())
	o.Println()
	o.Println("Run 'tracker <command> --help' for command flags.")
}

func defaultSessionDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate config directory, pass --session-dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func envOr(env map[string]string, key, fallback string) string {
	if v := env[key]; v != "" {
		return v
	}
	return fallback
}
