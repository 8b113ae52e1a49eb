// Package dispatch resolves a type-erased array.Array to one member of a
// closed, build-time list of concrete storages and hands the concretely
// typed value to a Visitor.
//
// The list is fixed: Kind enumerates it and Visitor has one method per
// member, so supporting a new storage means extending both, and every
// visitor stops compiling until it handles the new member.
//
// Matching is exact dynamic-type equality in Kind order. A type that merely
// embeds a member is not a member. Visit treats an unmatched value as a
// programming error: it logs the dynamic type and terminates the process.
// TryVisit reports the same condition as an error for values that crossed a
// trust boundary.
package dispatch
