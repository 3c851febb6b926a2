// Package bridge converts host sequences to and from the native vector,
// matrix, and resource-list types.
//
// A host sequence is a []any whose elements are numbers of any Go numeric
// type; conversion coerces them to the native float64 representation and
// reports a type error for anything else. Conversions that allocate native
// storage hand ownership to the caller.
package bridge
