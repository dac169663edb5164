// Package dfs enumerates the leaf decay paths of a core.Tree by depth-first
// traversal.
//
// What:
//
//   - A leaf path is one complete choice of decay channels: starting at a
//     node, one channel per decaying vertex reached, until every daughter
//     is stable.
//   - Steps are recorded in pre-order: the node itself, then everything
//     below its first daughter, then everything below its second daughter.
//     This is exactly the order in which generator.Generate consumes them.
//   - The cumulative branching fraction of a path is the product of the
//     fractions of its steps.
//
// Why:
//
//   - Event generation allocates floor(f·N) events to each path, so the set of
//     paths must partition the channel weight of the root exactly.
//
// How:
//
//	The walker carries (prefix, pending) by value: prefix is the path built
//	so far, pending the ordered list of nodes still to decay. Each channel of
//	the head of pending gets a fresh copy of prefix, so sibling channels never
//	observe each other's steps and no restore-on-backtrack is needed.
//
// Edge cases:
//
//   - A node without channels contributes no step; a root without channels
//     would yield exactly one empty Path with fraction 1. core.Tree.AddNode
//     always creates the primary channel, so every reached node normally
//     contributes one step.
//   - A node whose channels are all leaves yields one single-step path per
//     channel.
//
// Complexity:
//
//   - Time:   O(P·D) where P is the number of paths and D the path length.
//   - Memory: O(P·D) for the result, O(D) recursion depth.
//
// Errors:
//
//   - ErrTreeNil           if the tree is nil.
//   - core.ErrNodeNotFound if the start node does not exist.
//   - context.Canceled     if the context is done.
package dfs
