// Package catalog is the static table of Outlook extension points the generator
// understands. Each point maps to the client app variant it needs, the manifest
// form type that hosts it, and the activation rule that triggers it. The table
// is pure data; set algebra over it lives in the selection package.
package catalog
