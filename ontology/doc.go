// Package ontology holds the entity model of the bookstore world and the
// in-memory knowledge-base store the simulation operates on.
//
// The store is an explicitly constructed value, not a process-wide registry,
// so multiple simulations can coexist (important for tests). Single-valued
// entity fields that may be absent are modeled as Optional scalars with an
// explicit "value or default" accessor.
package ontology
