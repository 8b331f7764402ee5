package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

func extendMurder(base *ontology.Catalog) *ontology.Catalog {
	cat := base.Clone()
	obs := uco.ObservableNamespace
	inv := uco.InvestigationNamespace

	classes := []ontology.Class{
		investigationClass("A structured investigation of a homicide with digital evidence",
			"investigativeActions", "subjects", "provenance", "physicalEvidence", "deviceEvidence"),
		class("CrimeScene", uco.LocationNamespace+"Location", "Physical location where the crime occurred",
			[]string{"location:Location"},
			"latitude", "longitude", "address", "sceneType", "securitySystems",
			"accessPoints", "digitalDevicesPresent"),
		class("PhysicalEvidence", inv+"ProvenanceRecord", "Physical evidence collected during investigation",
			[]string{"investigation:ProvenanceRecord"},
			"evidenceType", "chainOfCustody", "collectionLocation", "forensicAnalysis",
			"digitalDocumentation"),
		class("VictimDevice", obs+"Device", "Digital device belonging to the victim",
			[]string{"observable:Device"},
			"deviceType", "owner", "lastAccessed", "dataExtracted", "encryptionStatus",
			"relevantFiles", "communicationHistory"),
		class("DigitalCommunication", obs+"Message", "Digital communications relevant to investigation",
			[]string{"observable:Message"},
			"communicationType", "sender", "recipient", "timestamp", "content", "platform",
			"relevance", "threatContent"),
		class("LocationHistory", uco.LocationNamespace+"LocationHistory", "Historical location data from devices",
			[]string{"location:Location"},
			"device", "timestamp", "coordinates", "accuracy", "source", "activity",
			"correlatedEvents"),
		class("OnlineActivity", obs+"BrowserHistory", "Web browsing and online activities",
			[]string{"observable:BrowserHistory"},
			"searchTerms", "visitedURLs", "timestamp", "device", "accountUsed",
			"relevantSearches", "suspiciousActivity"),
		class("SurveillanceData", obs+"ObservableObject", "Data from surveillance systems",
			[]string{"observable:ObservableObject"},
			"systemType", "location", "timeRange", "capturedEvents", "dataFormat",
			"relevantFootage", "retentionPeriod"),
	}

	props := []ontology.Property{
		datatype("evidenceType", uco.VocabularyNamespace+"EvidenceType", "Type of forensic evidence",
			"xsd:string", ontology.Required()),
		datatype("locationTimestamp", uco.LocationNamespace+"locationTimestamp", "Timestamp for location data",
			"xsd:dateTime", ontology.Required()),
		object("deviceOwner", obs+"deviceOwner", "Owner of the digital device", "core:Identity"),
		datatype("communicationContent", obs+"content", "Content of digital communication", "xsd:string"),
		datatype("relevanceAssessment", inv+"relevanceAssessment",
			"Assessment of evidence relevance to investigation", "xsd:string"),
		object("digitalDocumentation", inv+"digitalDocumentation",
			"Digital documentation of physical evidence", "observable:File"),
		datatype("suspiciousActivity", uco.VocabularyNamespace+"SuspiciousActivityType",
			"Indicators of suspicious online activity", "xsd:string"),
	}

	return register(cat, classes, props)
}

func murderCollections() []Collection {
	return []Collection{
		investigativeActions("murder"),
		{
			Field:       "physicalEvidence",
			Description: "Physical evidence collected during investigation",
			ItemType:    "case:PhysicalEvidence",
			Fields: []Field{
				{Name: "evidenceType", Type: "string"},
				{Name: "location", Type: "string"},
				{Name: "condition", Type: "string"},
			},
		},
	}
}
