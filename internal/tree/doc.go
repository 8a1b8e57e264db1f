// Package tree turns the local and server indexes into a two-level
// type -> id navigation structure.
//
// The first root node is always INDEX, which opens the index file itself.
// It is followed by one collapsible node per object type in ascending order,
// and each type expands to its objects in index order. Providers notify
// subscribers on Refresh so interactive views can reload.
package tree
