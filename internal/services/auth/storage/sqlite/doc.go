// Package sqlite stores auth users and web sessions in a single SQLite file
// through the pure-Go modernc driver.
package sqlite
