// Package cli provides the interactive classmate command-line client.
//
// It wires configuration, the session store, the API services, and an
// interactive REPL. Typical flow: restore any persisted session, start the
// background session watcher, and execute user commands.
//
// Key features:
//   - Login / Logout, two-step password reset
//   - Browse classrooms, assignments, and submissions
//   - Lecturers: create classrooms/assignments, manage rosters, grade work
//   - Students: submit assignments, check grades
//   - Download assignment attachments and submitted files
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
