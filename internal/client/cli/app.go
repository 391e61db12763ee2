package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/smartdrive/internal/client/client"
	"github.com/dmitrijs2005/smartdrive/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	http     *http.Client
	session  *sessionStore
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the API client and restores a saved login from TokenDir.
func NewApp(c *config.Config) (*App, error) {
	store, err := newSessionStore(c.TokenDir)
	if err != nil {
		return nil, err
	}

	hc := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	a := &App{
		config:  c,
		client:  hc,
		http:    hc.HTTP(),
		session: store,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}

	if err := a.restoreSession(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) restoreSession() error {
	sess, err := a.session.Load()
	if err != nil {
		return err
	}
	if sess != nil {
		a.userName = sess.UserName
		a.client.SetToken(sess.AccessToken)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run executes args as a single command, or starts the REPL when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return dispatch(ctx, a, args[0], args[1:])
	}
	a.Root(ctx)
	return nil
}

// Root runs the interactive loop until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to SmartDrive CLI, server %s (type 'help' for commands)\n", a.config.ServerURL)
	runREPL(ctx, a, a.getStatus, a.reader)
}
