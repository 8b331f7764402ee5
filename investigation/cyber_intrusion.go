package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// Cyber intrusion maps STIX 2.1 cyber observables, attack patterns and
// indicators onto CASE/UCO classes.

var observable = []string{"observable:Observable"}

func extendCyberIntrusion(base *ontology.Catalog) *ontology.Catalog {
	cat := base.Clone()
	obs := uco.ObservableNamespace

	classes := []ontology.Class{
		investigationClass("A structured investigation of a cyber intrusion",
			"investigativeActions", "subjects", "provenance", "observables"),
		class("Artifact", obs+"File", "Raw binary data or file content", observable,
			"mime_type", "payload_bin", "url", "hashes", "encryption_algorithm"),
		class("AutonomousSystem", obs+"AutonomousSystem", "An autonomous system (AS) in BGP routing", observable,
			"number", "name", "rir"),
		class("Directory", obs+"Directory", "Directory/folder in a file system", observable,
			"path", "path_enc", "created", "modified", "accessed"),
		class("DomainName", obs+"DomainName", "Network domain name", observable,
			"value", "resolves_to_refs"),
		class("EmailAddress", obs+"EmailAddress", "Email address", observable,
			"value", "display_name"),
		class("EmailMessage", obs+"EmailMessage", "Email message", observable,
			"is_multipart", "date", "content_type", "from_ref", "sender_ref", "to_refs",
			"cc_refs", "bcc_refs", "subject", "received_lines", "additional_header_fields",
			"body", "body_multipart", "raw_email_ref"),
		class("File", obs+"File", "Properties of a file", observable,
			"hashes", "size", "name", "name_enc", "magic_number_hex", "mime_type",
			"created", "modified", "accessed", "parent_directory_ref", "content_ref",
			"is_encrypted", "encryption_algorithm", "decryption_key"),
		class("IPv4Address", obs+"IPv4Address", "IPv4 network address", observable,
			"value", "resolves_to_refs", "belongs_to_refs"),
		class("IPv6Address", obs+"IPv6Address", "IPv6 network address", observable,
			"value", "resolves_to_refs", "belongs_to_refs"),
		class("NetworkTraffic", obs+"NetworkTraffic", "Network traffic data", observable,
			"start", "end", "is_active", "src_ref", "dst_ref", "src_port", "dst_port",
			"protocols", "src_byte_count", "dst_byte_count", "src_packets", "dst_packets",
			"ipfix", "src_payload_ref", "dst_payload_ref", "encapsulates_refs",
			"encapsulated_by_ref"),
		class("AttackPattern", uco.InvestigationNamespace+"AttackPattern",
			"A type of TTP that describes ways that adversaries attempt to compromise targets",
			[]string{"action:Action"},
			"name", "description", "kill_chain_phases", "external_references"),
		class("Indicator", uco.InvestigationNamespace+"Indicator",
			"Pattern used to detect suspicious or malicious cyber activity", observable,
			"pattern", "pattern_type", "pattern_version", "valid_from", "valid_until",
			"kill_chain_phases"),
	}

	props := []ontology.Property{
		datatype("type", uco.CoreNamespace+"type", "The type of object", "xsd:string", ontology.Required()),
		datatype("id", uco.CoreNamespace+"id", "Unique identifier for object", "xsd:string", ontology.Required()),
		datatype("value", obs+"value", "Value of the observable object", "xsd:string", ontology.Required()),
		object("hashes", obs+"hash", "Cryptographic hash values", "observable:Hash"),
		datatype("created", uco.CoreNamespace+"created", "Timestamp of creation", "xsd:dateTime"),
		datatype("modified", uco.CoreNamespace+"modified", "Timestamp of last modification", "xsd:dateTime"),
	}

	return register(cat, classes, props)
}

func cyberIntrusionCollections() []Collection {
	return []Collection{
		investigativeActions("cyber intrusion"),
		{
			Field:       "observables",
			Description: "Digital artifacts observed during investigation",
			ItemType:    "observable:CyberItem",
			Fields: []Field{
				{Name: "observableType", Type: "string"},
				{Name: "hasChanged", Type: "boolean"},
				{Name: "state", Type: "string"},
			},
		},
		{
			Field:       "subjects",
			Description: "Subjects involved in the investigation",
			ItemType:    "core:Identity",
			Fields: []Field{
				{Name: "identityType", Type: "string"},
				{Name: "role", Type: "string"},
			},
		},
	}
}
