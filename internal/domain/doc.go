// Package domain contains the core entities of the places service:
// users and the places they own. Entities carry their own validation;
// persistence and transport concerns live elsewhere.
package domain
