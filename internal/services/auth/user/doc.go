// Package user defines the auth user model and its credential rules.
//
// Usernames, emails, and passwords are normalized and validated here before
// they are persisted, so storage and transport never see raw signup input.
package user
