// Package merge writes a scaffold plan to disk. Plain files are written as
// planned, JSON configuration files are merged into whatever the project
// already has, and the add-in manifest is rewritten last.
//
// The engine is a single writer and does no locking of its own. Existing
// files are read into a Snapshot before anything is written so that a corrupt
// configuration file aborts the run without side effects.
package merge
