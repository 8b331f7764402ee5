package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// BuildBaseCatalog returns a fresh catalog seeded with the core classes and
// properties shared by every investigation type.
func BuildBaseCatalog() *ontology.Catalog {
	cat := ontology.NewCatalog()

	cat.RegisterClass(ontology.MustClass("UcoObject", uco.ClassUcoObject,
		"Base class for all UCO objects",
		[]string{"UcoThing"},
		[]string{
			"createdBy", "description", "externalReference", "hasFacet",
			"modifiedTime", "name", "objectCreatedTime", "specVersion", "tag",
		}))

	cat.RegisterClass(ontology.MustClass("Investigation", uco.ClassInvestigation,
		"A structured investigation of a cyber-related set of circumstances",
		[]string{"UcoObject"},
		[]string{
			"investigativeActions", "subjects", "provenance", "observables",
			"physicalEvidence", "deviceEvidence", "systemMonitoring",
			"userActivity", "victimIdentification",
		}))

	cat.RegisterProperty(ontology.MustProperty("createdBy", uco.CoreNamespace+"createdBy",
		"The identity that created this object",
		ontology.ObjectProperty,
		ontology.WithRange("core:IdentityAbstraction"), ontology.Required()))

	cat.RegisterProperty(ontology.MustProperty("objectCreatedTime", uco.CoreNamespace+"objectCreatedTime",
		"Time at which the object was created",
		ontology.DatatypeProperty,
		ontology.WithRange("xsd:dateTime"), ontology.Required()))

	return cat
}

// investigationClass builds a profile's replacement Investigation class.
// The property list replaces the base list; it is not merged with it.
func investigationClass(description string, properties ...string) ontology.Class {
	return ontology.MustClass("Investigation", uco.ClassInvestigation, description,
		[]string{"UcoObject"}, properties)
}

func class(name, uri, description string, superclasses []string, properties ...string) ontology.Class {
	return ontology.MustClass(name, uri, description, superclasses, properties)
}

func datatype(name, uri, description, rng string, opts ...ontology.PropertyOption) ontology.Property {
	return ontology.MustProperty(name, uri, description, ontology.DatatypeProperty,
		append([]ontology.PropertyOption{ontology.WithRange(rng)}, opts...)...)
}

func object(name, uri, description, rng string, opts ...ontology.PropertyOption) ontology.Property {
	return ontology.MustProperty(name, uri, description, ontology.ObjectProperty,
		append([]ontology.PropertyOption{ontology.WithRange(rng)}, opts...)...)
}

func register(cat *ontology.Catalog, classes []ontology.Class, props []ontology.Property) *ontology.Catalog {
	for _, c := range classes {
		cat.RegisterClass(c)
	}
	for _, p := range props {
		cat.RegisterProperty(p)
	}
	return cat
}
