// Package err provides the structured error type used across the object store.
//
// # Taxonomy
//
// Every failure surfaced by the core carries one of four codes:
//
//   - CodeNotFound: a referenced hash has no stored object
//   - CodeInvalidFormat: stored bytes are malformed
//   - CodeValidation: an object exists but has the wrong kind
//   - CodeIO: the filesystem or the compression stream failed
//
// # Usage Patterns
//
// Packages define a name constant and build errors with the constructors:
//
//	const pkgName = "store"
//
//	return scerr.NotFound(pkgName, "read", hash.String(), fs.ErrNotExist)
//
// Callers check codes either with the helpers or with errors.Is against a
// sentinel carrying the same code:
//
//	if scerr.IsCode(err, scerr.CodeNotFound) {
//	    // handle not found
//	}
//
//	if errors.Is(err, objects.ErrNotFound) {
//	    // same check
//	}
//
// Structured context can be attached for logging:
//
//	e := scerr.Validation("commitmanager", "build_commit", "tree hash is not a tree", nil)
//	e.WithContext("hash", hash.String())
package err
