// Package elem holds the protocol shared by the containers in this
// module: the customization registry that every container algorithm
// dispatches through, and the ownership policy that decides whether
// an inserted value is borrowed from the caller or copied into
// container-owned storage.
//
// None of the types here are safe for concurrent use. Registered
// functions must not mutate the container that calls them.
package elem
