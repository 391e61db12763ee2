package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"text/tabwriter"

	"github.com/dmitrijs2005/smartdrive/internal/client/client"
	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/netx"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Health(ctx context.Context) error {
	if err := a.client.Health(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Server %s is up\n", a.config.ServerURL)
	return nil
}

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, userName, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered. You can now login.")
	return nil
}

// Login prompts for credentials, obtains an access token and saves it in
// TokenDir so later runs stay logged in.
func (a *App) Login(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, userName, string(password))
	if err != nil {
		return err
	}

	if err := a.session.Save(&session{UserName: userName, AccessToken: token}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.userName = userName

	fmt.Fprintf(a.out, "Logged in as %s\n", userName)
	return nil
}

// Logout forgets the saved token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(); err != nil {
		return err
	}
	a.client.SetToken("")
	a.userName = ""

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// authed decorates errors of authenticated calls with a hint to log in again.
func authed(err error) error {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNotLoggedIn) {
		return fmt.Errorf("%w (use 'login')", err)
	}
	return err
}

// Upload sends the local file at p, stored under its base name.
func (a *App) Upload(ctx context.Context, p string) error {
	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", p)
	}

	name := filepath.Base(p)
	url, err := a.client.Upload(ctx, name, f)
	if err != nil {
		return authed(err)
	}

	fmt.Fprintf(a.out, "Uploaded %s (%d bytes): %s\n", name, info.Size(), url)
	return nil
}

func (a *App) List(ctx context.Context) error {
	files, err := a.client.List(ctx)
	if err != nil {
		return authed(err)
	}

	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tUPLOADED\tURL")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.FileName, f.UploadDate, f.FileURL)
	}
	return tw.Flush()
}

func (a *App) Delete(ctx context.Context, name string) error {
	if err := a.client.Delete(ctx, name); err != nil {
		return authed(err)
	}
	fmt.Fprintf(a.out, "Deleted %s\n", name)
	return nil
}

func (a *App) Share(ctx context.Context, name string) error {
	link, err := a.client.Share(ctx, name)
	if err != nil {
		return authed(err)
	}
	fmt.Fprintf(a.out, "%s\n(expires in %ds)\n", link.URL, link.ExpiresIn)
	return nil
}

// Download fetches name through a share link into dest. An empty dest or an
// existing directory receives the file under its base name.
func (a *App) Download(ctx context.Context, name, dest string) error {
	link, err := a.client.Share(ctx, name)
	if err != nil {
		return authed(err)
	}

	if dest == "" {
		dest = "."
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, path.Base(name))
	}

	f, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	n, err := netx.DownloadFromURL(ctx, a.http, link.URL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return err
	}

	fmt.Fprintf(a.out, "Downloaded %s to %s (%d bytes)\n", name, dest, n)
	return nil
}
