// Package audit provides an append-only JSONL log of publish runs.
//
// Each publish appends one entry with a run UUID, the recovered URL, the
// recipient count, and the deploy strategy used. Logging is best-effort:
// a failed append never fails the operation it records. The log carries
// no secrets: never the key, never the plaintext.
package audit
