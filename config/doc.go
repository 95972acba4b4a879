// Package config loads YAML configuration files shared across the Phoenix
// services.
//
// Two loading modes are provided. Load is best-effort: it resolves a config
// path from the environment or well-known locations and returns an empty map
// when nothing usable is found, so services can boot on defaults. LoadInto is
// strict: it decodes one named file into a typed struct, expands environment
// variable references, and fails loudly on any problem.
package config
