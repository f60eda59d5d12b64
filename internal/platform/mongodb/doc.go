// Package mongodb implements the store interfaces on top of MongoDB.
// The two collections, users and places, are kept mutually consistent by
// running the paired writes of place creation and deletion inside a
// single driver session transaction (see SessionTxRunner).
package mongodb
