// Package schemas holds the inter-service contract types for the Phoenix
// platform.
//
// The watcher types define the job-assistant / watcher API boundary. Both
// services import them from here so the wire contract cannot silently drift
// between independently maintained copies. The job description types mirror
// the JSON job schema and provide the format instructions handed to an LLM
// when extracting structured job data.
package schemas
