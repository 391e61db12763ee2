// Package cli provides the SmartDrive command-line client.
//
// It wires configuration, a saved login under TokenDir and the HTTP API
// client. With arguments it runs a single command (e.g. "upload ./a.txt");
// without them it starts an interactive REPL via App.Root.
//
// Commands:
//   - register / login / logout
//   - upload, list, delete
//   - share (temporary link) and download (share + fetch)
//   - health
package cli
