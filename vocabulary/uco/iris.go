package uco

import "strings"

// Namespace IRIs. Each ends with the separator used to form term IRIs.
const (
	CoreNamespace          = "https://ontology.unifiedcyberontology.org/uco/core/"
	ObservableNamespace    = "https://ontology.unifiedcyberontology.org/uco/observable/"
	IdentityNamespace      = "https://ontology.unifiedcyberontology.org/uco/identity/"
	LocationNamespace      = "https://ontology.unifiedcyberontology.org/uco/location/"
	ToolNamespace          = "https://ontology.unifiedcyberontology.org/uco/tool/"
	ActionNamespace        = "https://ontology.unifiedcyberontology.org/uco/action/"
	RoleNamespace          = "https://ontology.unifiedcyberontology.org/uco/role/"
	InvestigationNamespace = "https://ontology.caseontology.org/case/investigation/"
	VocabularyNamespace    = "https://ontology.caseontology.org/case/vocabulary/"
	XSDNamespace           = "http://www.w3.org/2001/XMLSchema#"
)

// JSON-LD @context values embedded in every generated schema. These are the
// ontology IRIs themselves (no trailing separator) and must not change.
const (
	ContextCase          = "https://ontology.caseontology.org/case/case"
	ContextInvestigation = "https://ontology.caseontology.org/case/investigation"
	ContextCore          = "https://ontology.unifiedcyberontology.org/uco/core"
	ContextVocabulary    = "https://ontology.caseontology.org/case/vocabulary"
	ContextXSD           = "http://www.w3.org/2001/XMLSchema#"
)

// ContextEntry is one prefix of the @context block.
type ContextEntry struct {
	Prefix string
	IRI    string
}

// Context returns the @context prefixes in emission order.
func Context() []ContextEntry {
	return []ContextEntry{
		{Prefix: "case", IRI: ContextCase},
		{Prefix: "investigation", IRI: ContextInvestigation},
		{Prefix: "core", IRI: ContextCore},
		{Prefix: "vocabulary", IRI: ContextVocabulary},
		{Prefix: "xsd", IRI: ContextXSD},
	}
}

// Class IRIs used by the base catalog and the record converters.
const (
	// ClassUcoThing is the root of the UCO class hierarchy.
	ClassUcoThing = CoreNamespace + "UcoThing"

	// ClassUcoObject is the base class for all UCO objects.
	// Extends: ClassUcoThing
	ClassUcoObject = CoreNamespace + "UcoObject"

	// ClassIdentityAbstraction groups identifying characteristics of an individual or organization.
	// Extends: ClassUcoObject
	ClassIdentityAbstraction = CoreNamespace + "IdentityAbstraction"

	// ClassIdentity is a concrete identity.
	// Extends: ClassIdentityAbstraction
	ClassIdentity = IdentityNamespace + "Identity"

	// ClassInvestigation is a structured investigation of a cyber-related set of circumstances.
	// Extends: ClassUcoObject
	ClassInvestigation = InvestigationNamespace + "Investigation"

	// ClassInvestigativeAction is an action performed during an investigation.
	// Extends: action:Action
	ClassInvestigativeAction = InvestigationNamespace + "InvestigativeAction"

	// ClassProvenanceRecord records the chain of custody of evidence.
	ClassProvenanceRecord = InvestigationNamespace + "ProvenanceRecord"
)

// Prefixes returns the prefix → namespace table used for CURIE expansion and
// RDF serialization.
func Prefixes() map[string]string {
	return map[string]string{
		"core":          CoreNamespace,
		"observable":    ObservableNamespace,
		"identity":      IdentityNamespace,
		"location":      LocationNamespace,
		"tool":          ToolNamespace,
		"action":        ActionNamespace,
		"role":          RoleNamespace,
		"investigation": InvestigationNamespace,
		"case":          InvestigationNamespace,
		"vocabulary":    VocabularyNamespace,
		"xsd":           XSDNamespace,
	}
}

// ExpandCURIE expands a prefixed name such as "core:UcoObject" to a full IRI.
// Values with an unknown prefix, or that already look like IRIs, are returned unchanged.
func ExpandCURIE(curie string) string {
	if strings.Contains(curie, "://") {
		return curie
	}
	prefix, local, ok := strings.Cut(curie, ":")
	if !ok {
		return curie
	}
	ns, known := Prefixes()[prefix]
	if !known {
		return curie
	}
	return ns + local
}
