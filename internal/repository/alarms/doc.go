// Package alarms implements persistence for the alarm collection and the
// Hackatime credential.
//
// Two drivers satisfy the Repository interface: FileRepository stores a JSON
// document on disk, SQLiteRepository stores rows in a SQLite database. Both
// replace the whole snapshot on Save; storage is best effort and callers log
// rather than surface save failures during evaluation.
package alarms
