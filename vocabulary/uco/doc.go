// Package uco provides IRIs and vocabulary predicates for the CASE/UCO ontologies.
//
// The Unified Cyber Ontology (UCO) defines the core object model (UcoObject,
// identities, observables, tools, actions). The Cyber-investigation Analysis
// Standard Expression (CASE) layers investigation concepts on top of it
// (Investigation, InvestigativeAction, ProvenanceRecord).
//
// Investigation records are JSON-LD documents whose @context maps the short
// prefixes used in record keys back to these namespaces. Predicates in this
// package follow the dotted three-part convention (domain.category.property)
// and carry the standard ontology IRI so records can be exported as RDF.
//
// Import this package to auto-register predicates:
//
//	import _ "github.com/c360studio/caseschema/vocabulary/uco"
package uco
