package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/nutshell/pkg/shell/access"
	"github.com/marmos91/nutshell/pkg/shell/response"
	"github.com/marmos91/nutshell/pkg/shell/tree"
)

type level int

const (
	guest level = iota
	user
	admin
)

func levelName(l level) string {
	switch l {
	case admin:
		return "admin"
	case user:
		return "user"
	default:
		return "guest"
	}
}

func levelFromName(s string) (level, bool) {
	switch s {
	case "admin":
		return admin, true
	case "user":
		return user, true
	case "guest":
		return guest, true
	default:
		return guest, false
	}
}

// fakeIO is an in-memory CharIo: it records every write and never produces
// input of its own (tests drive the shell directly via ProcessChar).
type fakeIO struct {
	full     strings.Builder
	lastCall string
}

func (f *fakeIO) GetChar() (rune, bool, error) { return 0, false, nil }

func (f *fakeIO) PutChar(c rune) error {
	f.full.WriteRune(c)
	return nil
}

func (f *fakeIO) WriteString(s string) error {
	f.full.WriteString(s)
	f.lastCall = s
	return nil
}

// fakeHandler implements both Handler and AsyncHandler.
type fakeHandler struct{}

func (fakeHandler) ExecuteSync(ctx context.Context, id string, args []string) (Response, error) {
	switch id {
	case "echo":
		return response.Success(args[0]), nil
	case "status":
		return response.Success("ok"), nil
	}
	return Response{}, ErrCommandNotFound
}

func (fakeHandler) ExecuteAsync(ctx context.Context, id string, args []string) (Response, error) {
	if id == "reboot" {
		return response.Success("rebooting"), nil
	}
	return Response{}, ErrCommandNotFound
}

// fakeCreds is a trivial plaintext CredentialProvider for tests only; the
// real reference implementation lives in pkg/credential.
type fakeCreds struct {
	users map[string]struct {
		level    level
		password string
	}
}

func (f *fakeCreds) FindUser(ctx context.Context, username string) (*access.User[level], error) {
	rec, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	u, err := access.New(username, rec.level)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (f *fakeCreds) VerifyPassword(ctx context.Context, u *access.User[level], password string) bool {
	rec, ok := f.users[u.Username]
	if !ok {
		return false
	}
	return rec.password == password
}

func sampleRoot() *tree.Directory[level] {
	echo := &tree.CommandMeta[level]{ID: "echo", Name: "echo", Description: "echo back", Level: guest, Kind: tree.Sync, MinArgs: 1, MaxArgs: 1}
	reboot := &tree.CommandMeta[level]{ID: "reboot", Name: "reboot", Description: "reboot", Level: admin, Kind: tree.Async, MinArgs: 0, MaxArgs: 0}
	status := &tree.CommandMeta[level]{ID: "status", Name: "status", Description: "status", Level: admin, Kind: tree.Sync, MinArgs: 0, MaxArgs: 0}
	system := &tree.Directory[level]{
		Name:  "system",
		Level: admin,
		Children: []tree.Node[level]{
			tree.NewCommandNode(reboot),
			tree.NewCommandNode(status),
		},
	}
	return &tree.Directory[level]{
		Level: guest,
		Children: []tree.Node[level]{
			tree.NewCommandNode(echo),
			tree.NewDirectoryNode(system),
		},
	}
}

func baseConfig() Config[level] {
	return Config[level]{
		MaxInput:                  128,
		MaxPathDepth:              8,
		MaxArgs:                   4,
		MaxPrompt:                 64,
		MaxResponse:               256,
		HistorySize:               8,
		CompletionEnabled:         true,
		WelcomeBanner:             "Welcome",
		WelcomeBannerAuth:         "Welcome (auth)",
		LoginPrompt:               "login: ",
		LoginSuccessMessage:       "Logged in",
		LoginFailedMessage:        "Login failed",
		InvalidLoginFormatMessage: "Invalid format",
		LogoutMessage:             "Logged out",
		LevelName:                 levelName,
		LevelFromName:             levelFromName,
	}
}

func feed(ctx context.Context, t *testing.T, s *Shell[level], line string) {
	t.Helper()
	for _, c := range line {
		require.NoError(t, s.ProcessChar(ctx, c))
	}
}

func feedAsync(ctx context.Context, t *testing.T, s *Shell[level], line string) {
	t.Helper()
	for _, c := range line {
		require.NoError(t, s.ProcessCharAsync(ctx, c))
	}
}

func newNoAuthShell(t *testing.T) (*Shell[level], *fakeIO) {
	t.Helper()
	s, err := New[level](sampleRoot(), fakeHandler{}, baseConfig())
	require.NoError(t, err)
	io := &fakeIO{}
	s.SetIO(io)
	require.NoError(t, s.Activate(context.Background()))
	io.full.Reset()
	return s, io
}

func TestNewRejectsTreeWithReservedChildName(t *testing.T) {
	ls := &tree.CommandMeta[level]{ID: "ls", Name: "ls", Level: guest, Kind: tree.Sync}
	root := &tree.Directory[level]{Children: []tree.Node[level]{tree.NewCommandNode(ls)}}

	_, err := New[level](root, fakeHandler{}, baseConfig())
	assert.ErrorIs(t, err, tree.ErrReservedName)
}

func TestNoAuthSession(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	feed(ctx, t, s, "ls\r")
	assert.Contains(t, io.full.String(), "echo")
	assert.Contains(t, io.full.String(), "system/")

	io.full.Reset()
	feed(ctx, t, s, "echo hi\r")
	assert.Contains(t, io.full.String(), "hi")
	assert.Equal(t, LoggedIn, s.State())
}

func TestAuthLoginInvalidFormatThenSuccess(t *testing.T) {
	ctx := context.Background()
	creds := &fakeCreds{users: map[string]struct {
		level    level
		password string
	}{
		"alice": {level: user, password: "secret"},
	}}
	s, err := New[level](sampleRoot(), fakeHandler{}, baseConfig(), WithCredentialProvider[level](creds))
	require.NoError(t, err)
	io := &fakeIO{}
	s.SetIO(io)
	require.NoError(t, s.Activate(ctx))
	assert.Equal(t, LoggedOut, s.State())

	io.full.Reset()
	feed(ctx, t, s, "noColonHere\r")
	assert.Contains(t, io.full.String(), "Invalid format")
	assert.Equal(t, LoggedOut, s.State())

	io.full.Reset()
	feed(ctx, t, s, "alice:wrong\r")
	assert.Contains(t, io.full.String(), "Login failed")
	assert.Equal(t, LoggedOut, s.State())

	io.full.Reset()
	feed(ctx, t, s, "alice:secret\r")
	assert.Contains(t, io.full.String(), "Logged in")
	assert.Equal(t, LoggedIn, s.State())
	require.NotNil(t, s.User())
	assert.Equal(t, "alice", s.User().Username)
}

func TestAccessMaskingIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	creds := &fakeCreds{users: map[string]struct {
		level    level
		password string
	}{
		"guestuser": {level: guest, password: "pw"},
	}}
	s, err := New[level](sampleRoot(), fakeHandler{}, baseConfig(), WithCredentialProvider[level](creds))
	require.NoError(t, err)
	io := &fakeIO{}
	s.SetIO(io)
	require.NoError(t, s.Activate(ctx))
	feed(ctx, t, s, "guestuser:pw\r")
	require.Equal(t, LoggedIn, s.State())

	io.full.Reset()
	feed(ctx, t, s, "doesnotexist\r")
	nonexistentOutput := io.full.String()

	io.full.Reset()
	feed(ctx, t, s, "system\r")
	deniedOutput := io.full.String()

	assert.Equal(t, nonexistentOutput, deniedOutput, "access-denied and nonexistent paths must render identically")
	assert.Contains(t, nonexistentOutput, "Invalid path")
}

func TestDoubleEscapeClearsLine(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	feed(ctx, t, s, "echo par")
	io.full.Reset()
	feed(ctx, t, s, "\x1b\x1b")
	assert.Equal(t, "\r\n"+s.renderPrompt(), io.lastCall)

	io.full.Reset()
	feed(ctx, t, s, "ls\r")
	assert.Contains(t, io.full.String(), "echo")
}

func TestHistoryNavigation(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	feed(ctx, t, s, "echo one\r")
	feed(ctx, t, s, "echo two\r")
	feed(ctx, t, s, "echo three\r")

	io.full.Reset()
	feed(ctx, t, s, "\x1b[A") // up -> echo three
	assert.True(t, strings.HasSuffix(io.lastCall, "echo three"))

	feed(ctx, t, s, "\x1b[A") // up -> echo two
	assert.True(t, strings.HasSuffix(io.lastCall, "echo two"))

	feed(ctx, t, s, "\x1b[A") // up -> echo one
	assert.True(t, strings.HasSuffix(io.lastCall, "echo one"))

	feed(ctx, t, s, "\x1b[B") // down -> echo two
	assert.True(t, strings.HasSuffix(io.lastCall, "echo two"))

	feed(ctx, t, s, "\x1b[B") // down -> echo three
	assert.True(t, strings.HasSuffix(io.lastCall, "echo three"))
}

func TestAsyncCommandRejectedBySyncEntrypoint(t *testing.T) {
	ctx := context.Background()
	creds := &fakeCreds{users: map[string]struct {
		level    level
		password string
	}{
		"root": {level: admin, password: "pw"},
	}}
	s, err := New[level](sampleRoot(), fakeHandler{}, baseConfig(), WithCredentialProvider[level](creds))
	require.NoError(t, err)
	io := &fakeIO{}
	s.SetIO(io)
	require.NoError(t, s.Activate(ctx))
	feed(ctx, t, s, "root:pw\r")
	require.Equal(t, LoggedIn, s.State())
	feed(ctx, t, s, "system\r")

	io.full.Reset()
	feed(ctx, t, s, "reboot\r")
	assert.Contains(t, io.full.String(), "async command dispatched via sync entrypoint")

	io.full.Reset()
	feedAsync(ctx, t, s, "reboot\r")
	assert.Contains(t, io.full.String(), "rebooting")
}

func TestMaxArgsCapRejectsTooManyArguments(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	io.full.Reset()
	feed(ctx, t, s, "echo one two three four five\r") // 5 args, cap is 4
	assert.Contains(t, io.full.String(), "Too many arguments")
	assert.Equal(t, LoggedIn, s.State())
}

// longMessageHandler returns a message longer than baseConfig's
// MaxResponse so emit's truncation can be observed directly.
type longMessageHandler struct{}

func (longMessageHandler) ExecuteSync(ctx context.Context, id string, args []string) (Response, error) {
	return response.Success(strings.Repeat("x", 1000)), nil
}

func TestMaxResponseTruncatesMessage(t *testing.T) {
	ctx := context.Background()
	dump := &tree.CommandMeta[level]{ID: "dump", Name: "dump", Level: guest, Kind: tree.Sync, MinArgs: 0, MaxArgs: 0}
	root := &tree.Directory[level]{Children: []tree.Node[level]{tree.NewCommandNode(dump)}}

	cfg := baseConfig()
	s, err := New[level](root, longMessageHandler{}, cfg)
	require.NoError(t, err)
	io := &fakeIO{}
	s.SetIO(io)
	require.NoError(t, s.Activate(ctx))

	io.full.Reset()
	feed(ctx, t, s, "dump\r")
	assert.LessOrEqual(t, len(io.full.String()), cfg.MaxResponse+64) // plus prompt/newline overhead
	assert.NotContains(t, io.full.String(), strings.Repeat("x", 1000))
}

func TestDirectoryNavigationEmitsSingleNewlineBeforePrompt(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	io.full.Reset()
	feed(ctx, t, s, "system\r")
	assert.Equal(t, "system\r\n"+s.renderPrompt(), io.full.String())
}

func TestListDirectoryHasNoDescriptionColumnForDirectories(t *testing.T) {
	ctx := context.Background()
	s, io := newNoAuthShell(t)

	io.full.Reset()
	feed(ctx, t, s, "ls\r")
	out := io.full.String()
	assert.NotContains(t, out, "system/   system")
	assert.Contains(t, out, "system/")
}
