// Package scaffold plans the files of a generated Outlook add-in project from
// embedded templates. Planning is pure: it renders templates in memory and
// returns a Plan describing every file, and leaves writing (and merging into
// existing configuration) to the merge package.
package scaffold
