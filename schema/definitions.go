package schema

import (
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// Definition keys for the shared base definitions.
var (
	KeyUcoObject           = DefinitionKey("core:UcoObject")
	KeyIdentityAbstraction = DefinitionKey("core:IdentityAbstraction")
	KeyInvestigativeAction = DefinitionKey("investigation:InvestigativeAction")
)

// contextProperty is the @context block tying a record to CASE/UCO.
func contextProperty() *Schema {
	ctx := uco.Context()
	props := make(map[string]*Schema, len(ctx))
	required := make([]string, 0, len(ctx))
	for _, e := range ctx {
		props[e.Prefix] = Constant(e.IRI)
		required = append(required, e.Prefix)
	}
	return Object(props, required...)
}

// baseDefinitions returns the definitions every compiled document carries.
func baseDefinitions() map[string]*Schema {
	ucoObject := &Schema{
		Type:        "object",
		Description: "Base object that all UCO objects inherit from",
		Properties: map[string]*Schema{
			"@id":               {Type: "string"},
			"@type":             {Type: "string"},
			"createdBy":         Ref(RefFor("core:IdentityAbstraction")),
			"description":       {Type: "string"},
			"modifiedTime":      DateTime(),
			"name":              {Type: "string"},
			"objectCreatedTime": DateTime(),
			"specVersion":       {Type: "string"},
		},
		Required: []string{"@id", "@type", "objectCreatedTime", "specVersion"},
	}

	identity := Extends(RefFor("core:UcoObject"), map[string]*Schema{
		"@type":     Constant("core:IdentityAbstraction"),
		"createdBy": Ref(RefFor("core:IdentityAbstraction")),
	})
	identity.Type = "object"
	identity.Description = "A grouping of identifying characteristics unique to an individual or organization"

	action := Extends(RefFor("core:UcoObject"), map[string]*Schema{
		"@type":                   Constant("investigation:InvestigativeAction"),
		"startTime":               DateTime(),
		"endTime":                 DateTime(),
		"status":                  {Type: "string"},
		"authorizationIdentifier": {Type: "string"},
	})
	action.Type = "object"
	action.Description = "An investigative action performed during the investigation"

	return map[string]*Schema{
		KeyUcoObject:           ucoObject,
		KeyIdentityAbstraction: identity,
		KeyInvestigativeAction: action,
	}
}

// coreProperty is one top-level property every investigation record carries.
type coreProperty struct {
	name        string
	jsonType    string
	description string
	required    bool
	rng         string
}

var coreProperties = []coreProperty{
	{name: "@id", jsonType: "string", description: "Unique identifier for this object", required: true},
	{name: "@type", jsonType: "string", description: "The type of this object (from CASE vocabulary)", required: true},
	{name: "createdBy", jsonType: "object", description: "The identity that created this object", required: true, rng: "core:IdentityAbstraction"},
	{name: "description", jsonType: "string", description: "A description of this object"},
	{name: "modifiedTime", jsonType: "string", description: "The time this object was last modified", rng: "xsd:dateTime"},
	{name: "name", jsonType: "string", description: "The name of this object", required: true, rng: "string"},
	{name: "objectCreatedTime", jsonType: "string", description: "When this object was created", required: true, rng: "xsd:dateTime"},
	{name: "specVersion", jsonType: "string", description: "Version of UCO ontology specification used", required: true},
}

func (p coreProperty) schema() *Schema {
	s := &Schema{Type: p.jsonType, Description: p.description}
	if p.rng != "" {
		s.Ref = RefFor(p.rng)
	}
	return s
}
