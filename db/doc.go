// Package db provides the shared database plumbing for the Phoenix
// services: DSN-based driver detection, a pool-configured Open, and a small
// unit-of-work layer over database/sql transactions.
//
// The package blank-imports the MySQL driver because every current Phoenix
// deployment runs on MySQL. Services targeting Postgres or SQLite import
// their driver themselves and name it in Config.Driver.
package db
