// Package jsondoc is an order-preserving JSON object model used to merge
// generator output into configuration files a project already owns. Keys keep
// their original order on a round trip and new keys are appended, so a merged
// package.json or tsconfig.json diffs cleanly against what the user had.
//
// Input is read as JSONC: comments and trailing commas are accepted (they are
// common in tsconfig.json and jsconfig.json) and dropped on output.
package jsondoc
