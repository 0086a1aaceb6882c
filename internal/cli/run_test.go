package cli

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"food-donation-tracker/cmd/config"
	"food-donation-tracker/cmd/database/seed"
	"food-donation-tracker/internal/utils/logger"
	"food-donation-tracker/internal/utils/storage"
	"food-donation-tracker/pkg/jwt"
	"food-donation-tracker/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()

	repos := config.NewRepositories(nil)
	_, err := seed.Seed(context.Background(), repos.Organization)
	require.NoError(t, err)

	app := config.Build(config.AppOptions{
		Repositories: repos,
		JWTService:   jwt.NewJWTServiceWithSecret("cli-test"),
		Storage:      storage.NewAwsS3(),
		Log:          logger.NewNopLogger(),
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "http://" + ln.Addr().String()
}

type harness struct {
	t          *testing.T
	server     string
	sessionDir string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, server: startServer(t), sessionDir: t.TempDir()}
}

func (h *harness) run(args ...string) (int, string, string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	argv := append([]string{"tracker", "--server", h.server, "--session-dir", h.sessionDir}, args...)
	code := Run(context.Background(), &out, &errOut, argv, map[string]string{})
	return code, out.String(), errOut.String()
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	code, out, errOut := h.run(args...)
	require.Equal(h.t, 0, code, "stderr: %s", errOut)
	return out
}

func TestUsageWithoutCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(context.Background(), &out, &errOut, []string{"tracker"}, map[string]string{"TRACKER_SESSION_DIR": t.TempDir()})

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Usage: tracker [global flags] <command> [args]")
	assert.Contains(t, out.String(), "donations status <id> <status>")
	assert.Contains(t, out.String(), "--session-dir")
}

func TestUnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Run(context.Background(), &out, &errOut, []string{"tracker", "recipes"}, map[string]string{"TRACKER_SESSION_DIR": t.TempDir()})

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "unknown command: recipes")
}

func TestCommandsNeedLogin(t *testing.T) {
	h := newHarness(t)

	for _, args := range [][]string{{"whoami"}, {"donations", "list"}, {"food", "list"}, {"orgs"}, {"dashboard"}} {
		code, _, errOut := h.run(args...)
		assert.Equal(t, 1, code, args)
		assert.Contains(t, errOut, "not logged in", args)
	}
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("register", "-u", "maria", "-e", "maria@example.com", "-p", "supersecret")
	assert.Contains(t, out, "Registered and logged in as maria (donor)")

	raw, err := os.ReadFile(filepath.Join(h.sessionDir, session.StorageKey+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"username": "maria"`)

	assert.Equal(t, "maria <maria@example.com> (donor)\n", h.mustRun("whoami"))

	assert.Equal(t, "Logged out\n", h.mustRun("logout"))
	code, _, errOut := h.run("whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "not logged in")

	code, _, errOut = h.run("login", "-e", "maria@example.com", "-p", "wrong-password")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid email or password")

	assert.Contains(t, h.mustRun("login", "-e", "maria@example.com", "-p", "supersecret"), "Logged in as maria")
}

func TestDonationWorkflow(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "-u", "john", "-e", "john@example.com", "-p", "supersecret")

	out := h.mustRun("orgs", "--max-distance", "3", "--need", "Produce")
	assert.Contains(t, out, "Hope Community Center")
	assert.NotContains(t, out, "City Food Bank")

	out = h.mustRun("donations", "add", "-n", "Fresh Vegetables", "--quantity", "5", "--unit", "kg",
		"-o", "hope community center", "--date", "2025-03-15")
	require.Contains(t, out, "to Hope Community Center recorded (Pending)")
	id := strings.Fields(out)[1]

	code, _, errOut := h.run("donations", "status", id, "lost")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid donation status")

	assert.Equal(t, "Fresh Vegetables is now Completed\n", h.mustRun("donations", "status", id, "completed"))

	out = h.mustRun("donations", "list", "--status", "completed", "-q", "VEG")
	assert.Contains(t, out, "Fresh Vegetables")
	assert.Contains(t, out, "5 kg")

	assert.Equal(t, "No donations found\n", h.mustRun("donations", "list", "--status", "pending"))

	out = h.mustRun("donations", "stats")
	assert.Contains(t, out, "Items donated:        5")
	assert.Contains(t, out, "approximately 4 meals")
}

func TestFoodAndDashboard(t *testing.T) {
	h := newHarness(t)
	h.mustRun("register", "-u", "amira", "-e", "amira@example.com", "-p", "supersecret")

	out := h.mustRun("food", "add", "-n", "Old Bread", "--category", "bakery", "--quantity", "1", "--unit", "loaves", "--expires", "2001-01-01")
	assert.Contains(t, out, "Added Old Bread (Bakery): Expired")

	code, _, errOut := h.run("food", "add", "-n", "Chips", "--category", "snacks", "--quantity", "1", "--expires", "2001-01-01")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "category: Category must be one of")

	out = h.mustRun("food", "list", "--category", "bakery")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Old Bread")

	out = h.mustRun("food", "expiring")
	assert.Contains(t, out, "Food log: 1 items (1 expired, 0 tomorrow, 0 soon, 0 fine)")
	assert.Contains(t, out, "Nothing expires in the next three days")

	out = h.mustRun("dashboard")
	assert.Contains(t, out, "Recent donations:\n  none yet")
	assert.Contains(t, out, "Hope Community Center (1.2 km)")
}

func TestCorruptSessionIsDiscarded(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.WriteFile(filepath.Join(h.sessionDir, session.StorageKey+".json"), []byte("{not json"), 0o600))

	code, _, errOut := h.run("whoami")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "discarded unreadable session")
	assert.Contains(t, errOut, "not logged in")

	_, err := os.Stat(filepath.Join(h.sessionDir, session.StorageKey+".json"))
	assert.True(t, os.IsNotExist(err))
}

func TestPasswordFromEnvironment(t *testing.T) {
	st := &state{env: map[string]string{"TRACKER_PASSWORD": "from-env"}, password: func(string) (string, error) {
		return "prompted", nil
	}}

	pw, err := st.readPassword("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", pw)

	pw, err = st.readPassword("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", pw)

	st.env = map[string]string{}
	pw, err = st.readPassword("")
	require.NoError(t, err)
	assert.Equal(t, "prompted", pw)
}

func TestLookupPrefersLongestName(t *testing.T) {
	commands := []*Command{
		{Usage: "donations list [flags]"},
		{Usage: "donations status <id> <status>"},
		{Usage: "orgs [flags]"},
	}

	cmd, rest := lookup(commands, []string{"donations", "status", "abc", "completed"})
	require.NotNil(t, cmd)
	assert.Equal(t, "donations status", cmd.Name())
	assert.Equal(t, []string{"abc", "completed"}, rest)

	cmd, _ = lookup(commands, []string{"donations"})
	assert.Nil(t, cmd)
}
