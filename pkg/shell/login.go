package shell

import (
	"context"
	"strings"

	"github.com/marmos91/nutshell/pkg/shell/access"
	"github.com/marmos91/nutshell/pkg/shell/response"
)

// handleLogin processes Enter while LoggedOut: parse "<user>:<pass>",
// look the user up, verify the password in constant time, and either
// transition to LoggedIn or report the generic login-failed message.
// In every branch the buffer is cleared and the password is never
// written to history.
func (s *Shell[L]) handleLogin(ctx context.Context) error {
	line := string(s.buffer)
	s.buffer = s.buffer[:0]

	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return s.write("\r\n  " + s.cfg.InvalidLoginFormatMessage + "\r\n" + s.cfg.LoginPrompt)
	}
	username, password := line[:idx], line[idx+1:]
	if username == "" || password == "" {
		return s.write("\r\n  " + s.cfg.InvalidLoginFormatMessage + "\r\n" + s.cfg.LoginPrompt)
	}

	authUser, err := s.creds.FindUser(ctx, username)
	if err != nil || authUser == nil {
		s.metrics.LoginFailed()
		s.log.Warn(ctx, "login failed: unknown user", "shell_id", s.id)
		return s.write("\r\n  " + s.cfg.LoginFailedMessage + "\r\n" + s.cfg.LoginPrompt)
	}

	if !s.creds.VerifyPassword(ctx, authUser, password) {
		s.metrics.LoginFailed()
		s.log.Warn(ctx, "login failed: bad password", "shell_id", s.id, "username", username)
		return s.write("\r\n  " + s.cfg.LoginFailedMessage + "\r\n" + s.cfg.LoginPrompt)
	}

	u, err := access.New(authUser.Username, authUser.Level)
	if err != nil {
		s.metrics.LoginFailed()
		return s.write("\r\n  " + s.cfg.LoginFailedMessage + "\r\n" + s.cfg.LoginPrompt)
	}

	s.user = &u
	s.state = LoggedIn
	s.hist.Reset()
	s.metrics.LoginSucceeded()
	s.log.Debug(ctx, "login succeeded", "shell_id", s.id, "username", username)

	if err := s.write("\r\n  " + s.cfg.LoginSuccessMessage + "\r\n"); err != nil {
		return err
	}
	return s.writePrompt()
}

// logout clears the current user and path stack, so the next login
// starts back at the root directory, resets history, and transitions
// back to LoggedOut. The caller is responsible for writing the login
// prompt afterward, since the normal Response.ShowPrompt path renders
// the LoggedIn-style prompt, not the login prompt.
func (s *Shell[L]) logout() Response {
	s.user = nil
	s.pathStack.Reset()
	s.hist.Reset()
	s.state = LoggedOut

	r := response.Success(s.cfg.LogoutMessage)
	r.ShowPrompt = false
	return r
}
