package driven

import "context"

// FileLister enumerates the documents under an input directory.
type FileLister interface {
	// List returns every regular file below root.
	// Returns domain.ErrInputDirMissing if root is not a directory.
	List(ctx context.Context, root string) ([]string, error)
}
