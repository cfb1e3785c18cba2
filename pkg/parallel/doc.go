// Package parallel runs work on a fixed pool of goroutines where running
// tasks may submit more tasks, and uses it to sum node weights over the
// part of a graph reachable from a root.
//
// The pool tracks outstanding tasks (queued plus executing). The count is
// raised before a task becomes visible in the queue and lowered only after
// its body has returned, so it can only reach zero once no task is left
// that could still submit another. Wait blocks on that zero crossing; an
// empty queue alone says nothing, since a running task may be about to
// submit.
//
// The traversal marks each node NotVisited, Processing or Done under one
// lock. A visit task claims its node before doing any work, which makes
// duplicate submissions of the same node harmless no-ops.
package parallel
