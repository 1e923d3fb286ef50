// Package list implements the controller behind repeatable form fields.
//
// A Controller owns an ordered collection of child editors and the parameter
// sequence backing them. Each child is bound to one slot through a stable
// Handle, so writes made by a child always land in the slot it currently
// occupies, even after MoveItem. The sequence is shared by pointer with the
// owning form: the controller reports presence and absence transitions
// through its SetValueFunc, while children update slot contents in place.
//
// Children are built through a registry.Registry keyed by the child schema
// type. Registering the list constructor (see Register) lets child schemas of
// type "list" nest controllers.
//
// Readiness registrations made through Ready are forwarded to the parent
// until the ancestor's readiness signal fires. Afterwards, registrations made
// while a child is being constructed are deferred until that child exists.
package list
