package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

func extendChildAbuse(base *ontology.Catalog) *ontology.Catalog {
	cat := base.Clone()
	obs := uco.ObservableNamespace
	inv := uco.InvestigationNamespace
	vocab := uco.VocabularyNamespace
	provenance := []string{"investigation:ProvenanceRecord"}

	classes := []ontology.Class{
		investigationClass("A structured investigation of child abuse and online exploitation",
			"investigativeActions", "subjects", "provenance", "digitalEvidence", "victimIdentification"),
		class("ChildVictim", inv+"Victim", "Child victim of abuse", []string{"core:Role"},
			"age", "guardian", "schoolInformation", "medicalHistory", "onlinePlatformsUsed",
			"deviceAccess", "vulnerabilityFactors"),
		class("AbuseIncident", inv+"InvestigativeAction", "Documented incident of abuse",
			[]string{"investigation:InvestigativeAction"},
			"incidentType", "location", "dateTime", "witnesses", "digitalEvidence",
			"platformsInvolved", "reportingSource"),
		class("CSAMEvidence", inv+"ProvenanceRecord", "Child Sexual Abuse Material evidence", provenance,
			"hashValue", "classification", "source", "discoveryMethod", "forensicTooling",
			"chainOfCustody", "ncmecReport"),
		class("OnlinePlatform", obs+"Application", "Digital platform used in abuse",
			[]string{"observable:Application"},
			"platformType", "userAccounts", "contentFound", "accessDates", "communicationMethods"),
		class("DigitalCommunication", obs+"Message", "Digital communications related to abuse",
			[]string{"observable:Message"},
			"communicationType", "participants", "content", "timestamp", "platform", "attachments"),
		class("OffenderDevice", obs+"Device", "Digital device used by offender",
			[]string{"observable:Device"},
			"deviceType", "storageCapacity", "encryptionStatus", "networkConnections",
			"installedApps", "forensicImage"),
		class("CyberTipReport", inv+"ProvenanceRecord", "NCMEC CyberTipline report", provenance,
			"reportId", "reportingESP", "incidentType", "reportDate", "contentLocation", "ipAddresses"),
	}

	props := []ontology.Property{
		datatype("incidentType", vocab+"IncidentType", "Type of abuse incident", "xsd:string", ontology.Required()),
		datatype("hashValue", obs+"hash", "Cryptographic hash of CSAM evidence", "xsd:string", ontology.Required()),
		datatype("platformType", vocab+"PlatformType", "Type of online platform", "xsd:string"),
		datatype("communicationType", vocab+"CommunicationType", "Type of digital communication", "xsd:string"),
		object("ncmecReport", inv+"ncmecReport", "Reference to NCMEC CyberTipline report",
			"investigation:ProvenanceRecord"),
		object("forensicTooling", uco.ToolNamespace+"Tool", "Forensic tools used in evidence analysis", "tool:Tool"),
	}

	return register(cat, classes, props)
}

func childAbuseCollections() []Collection {
	return []Collection{
		investigativeActions("child abuse"),
		{
			Field:       "digitalEvidence",
			Description: "Digital evidence collected during investigation",
			ItemType:    "case:DigitalEvidence",
			Fields: []Field{
				{Name: "evidenceType", Type: "string"},
				{Name: "hash", Type: "string"},
				{Name: "classification", Type: "string"},
			},
		},
	}
}
