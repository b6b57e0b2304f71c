// package localstore provides the SQLite-backed local persistence layer.
//
// It owns the database lifecycle (open, pool configuration, embedded SQL
// migrations) and exposes a small key/value surface used for the saved
// session, alongside the artwork cache tables consumed by the
// repositories package.
package localstore
