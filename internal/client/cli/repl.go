package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printFn and printlnFn are test seams for user-facing output. In tests, replace them with stubs.
var (
	printFn   = fmt.Print
	printlnFn = fmt.Println
)

var errUnknownCommand = errors.New("unknown command")

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Health(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	List(ctx context.Context) error
	Delete(ctx context.Context, name string) error
	Share(ctx context.Context, name string) error
	Download(ctx context.Context, name, dest string) error
}

type usageError struct {
	usage string
}

func (e usageError) Error() string { return "usage: " + e.usage }

func helpText(loggedIn bool) string {
	if loggedIn {
		return "Available commands: list, upload <path>, delete <name>, share <name>, download <name> [dest], logout, health, exit"
	}
	return "Available commands: register, login, health, exit"
}

// dispatch runs a single command. It is shared by the REPL and one-shot mode.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		printlnFn(helpText(a.isLoggedIn()))
		return nil
	case "health":
		return a.Health(ctx)
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "l", "list", "ls":
		return a.List(ctx)
	case "upload", "put":
		if len(args) != 1 {
			return usageError{"upload <path>"}
		}
		return a.Upload(ctx, args[0])
	case "delete", "rm":
		if len(args) != 1 {
			return usageError{"delete <name>"}
		}
		return a.Delete(ctx, args[0])
	case "share":
		if len(args) != 1 {
			return usageError{"share <name>"}
		}
		return a.Share(ctx, args[0])
	case "download", "get":
		switch len(args) {
		case 1:
			return a.Download(ctx, args[0], "")
		case 2:
			return a.Download(ctx, args[0], args[1])
		default:
			return usageError{"download <name> [dest]"}
		}
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, cmd)
	}
}

// runREPL starts a simple read-eval-print loop for the SmartDrive CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches it. Command errors are printed and the loop goes on. The loop
// exits on EOF, on "exit"/"quit", or when ctx is cancelled.
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                      show available commands
//	  - register                  create an account
//	  - login                     authenticate
//	  - health                    check the server
//	  - exit | quit               leave the program
//
//	Logged in:
//	  - list                      list your files
//	  - upload <path>             upload a local file
//	  - delete <name>             delete a file
//	  - share <name>              print a temporary download link
//	  - download <name> [dest]    fetch a file through a share link
//	  - logout                    forget the saved token
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printFn(fmt.Sprintf("smartdrive %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, parts[1:]); err != nil {
			printlnFn("Error:", err)
		}
	}
}
