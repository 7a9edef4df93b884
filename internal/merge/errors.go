package merge

import "fmt"

// CorruptTargetError reports an existing merge target that is not a JSON
// object. It is fatal: Apply returns it before writing anything.
type CorruptTargetError struct {
	Path string
	Err  error
}

func (e *CorruptTargetError) Error() string {
	return fmt.Sprintf("existing %s cannot be merged: %v", e.Path, e.Err)
}

func (e *CorruptTargetError) Unwrap() error { return e.Err }

// WriteError reports a planned file that could not be written. Apply keeps
// going after a WriteError and collects it in Result.Failures.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
