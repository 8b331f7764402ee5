package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

// The generic CASE investigation namespace. Its schema is usually combined
// with one of the type-specific schemas.

func extendCaseInvestigation(base *ontology.Catalog) *ontology.Catalog {
	cat := base.Clone()
	inv := uco.InvestigationNamespace
	role := []string{"core:Role"}
	lifecycle := []string{"core:ActionLifecycle"}
	ucoObject := []string{"core:UcoObject"}

	classes := []ontology.Class{
		class("Attorney", inv+"Attorney", "A legal professional involved in the investigation", role,
			"barNumber", "jurisdiction", "representedParty"),
		class("Authorization", inv+"Authorization", "Legal authorization for investigative actions", ucoObject,
			"authorizationType", "authorizationIdentifier", "authorizedBy", "validFrom", "validUntil", "scope"),
		class("Examiner", inv+"Examiner", "Person who performs forensic examination of evidence", role,
			"certification", "organization", "examinerType"),
		class("ExaminerActionLifecycle", inv+"ExaminerActionLifecycle",
			"Timeline of actions performed by an examiner", lifecycle,
			"examiner", "authorization", "toolsUsed"),
		class("Investigation", uco.ClassInvestigation, "A structured investigation of circumstances", ucoObject,
			"focus", "investigationStatus", "investigationType", "startTime", "endTime", "investigativeActions"),
		class("InvestigativeAction", uco.ClassInvestigativeAction, "An action taken as part of an investigation",
			[]string{"action:Action"},
			"authorization", "performer", "startTime", "endTime", "location", "objects", "result"),
		class("Investigator", inv+"Investigator", "Person conducting the investigation", role,
			"badgeNumber", "organization", "investigatorType"),
		class("ProvenanceRecord", uco.ClassProvenanceRecord, "Record of the origins and custody of evidence", ucoObject,
			"exhibitNumber", "custody", "priorLocation", "transferTime", "transferredBy"),
		class("Subject", inv+"Subject", "Person of investigative interest", role,
			"subjectType", "isConfidential", "aliases"),
		class("SubjectActionLifecycle", inv+"SubjectActionLifecycle",
			"Timeline of actions performed by a subject", lifecycle,
			"subject", "actionType", "location"),
		class("VictimActionLifecycle", inv+"VictimActionLifecycle",
			"Timeline of actions related to a victim", lifecycle,
			"victim", "impactSeverity", "victimImpact"),
	}

	props := []ontology.Property{
		datatype("authorizationType", inv+"authorizationType", "Type of legal authorization",
			"xsd:string", ontology.Required()),
		datatype("investigationStatus", inv+"investigationStatus", "Current status of the investigation",
			"xsd:string", ontology.Required()),
		datatype("exhibitNumber", inv+"exhibitNumber", "Identifier assigned to evidence exhibit",
			"xsd:string", ontology.Required()),
	}

	return register(cat, classes, props)
}

func caseInvestigationCollections() []Collection {
	return []Collection{investigativeActions("CASE")}
}
