package engine

import "errors"

// ErrNoCandidate is returned by Run when the search ended before any
// candidate was committed.
//
// This is an engine-layer sentinel; the vanigo package may translate it into
// its public error contract.
var ErrNoCandidate = errors.New("no candidate committed")
