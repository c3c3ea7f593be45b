package models

import "errors"

// Sentinel errors shared by the repositories, the engine and the HTTP
// layer. Repositories wrap driver not-found conditions into
// ErrNotFound so the rest of the code never sees a driver error type.
var (
	// ErrNotFound means a referenced user or post id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrSelfFollow rejects a follow toggle where actor and target are
	// the same user.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrEmptyContent rejects a post create or edit where description
	// and picture path are both absent.
	ErrEmptyContent = errors.New("description and post picture cannot both be empty")

	// ErrEditWindowExpired rejects an edit attempted more than one hour
	// after the post was created.
	ErrEditWindowExpired = errors.New("posts can only be edited within an hour of creation")
)
