package investigation

import (
	"github.com/c360studio/caseschema/ontology"
	"github.com/c360studio/caseschema/vocabulary/uco"
)

func extendInsiderThreat(base *ontology.Catalog) *ontology.Catalog {
	cat := base.Clone()
	obs := uco.ObservableNamespace
	inv := uco.InvestigationNamespace
	vocab := uco.VocabularyNamespace

	classes := []ontology.Class{
		investigationClass("A structured investigation of an insider threat",
			"investigativeActions", "subjects", "provenance", "systemMonitoring", "userActivity"),
		class("InsiderThreatActor", inv+"Subject", "Employee or contractor under investigation",
			[]string{"investigation:Subject"},
			"employeeId", "accessLevel", "department", "role", "threatCategory", "riskLevel",
			"supervisorContact", "employmentStatus", "clearanceLevel"),
		class("DataExfiltrationEvent", inv+"InvestigativeAction", "Data exfiltration activity detection",
			[]string{"investigation:InvestigativeAction"},
			"dataType", "dataVolume", "exfilMethod", "destination", "detectionMethod",
			"impactAssessment", "preventiveMeasures"),
		class("SystemMisuseEvent", obs+"ObservableAction", "Unauthorized system access or misuse",
			[]string{"observable:ObservableAction"},
			"systemAffected", "misuseType", "unauthorized_actions", "impactLevel", "detectionSource"),
		class("SecurityAlert", obs+"ObservablePattern", "Security system generated alert",
			[]string{"observable:ObservablePattern"},
			"alertType", "severity", "triggerCondition", "detectionSystem", "falsePositiveStatus"),
		class("UserActivity", obs+"UserSession", "User activity monitoring record",
			[]string{"observable:UserSession"},
			"activityType", "timestamp", "location", "device", "resourcesAccessed", "behaviorPattern"),
		class("SensitiveResource", obs+"ObservableObject", "Protected organizational resource",
			[]string{"observable:ObservableObject"},
			"resourceType", "classification", "accessControls", "dataOwner", "protectionLevel"),
		class("DetectionTool", uco.ToolNamespace+"Tool", "Insider threat detection software/tool",
			[]string{"tool:Tool"},
			"toolType", "detectionCapabilities", "alertThresholds", "configurationSettings",
			"effectivenessMetrics"),
	}

	props := []ontology.Property{
		datatype("threatCategory", vocab+"ThreatCategory",
			"Category of insider threat (Pawn, Goof, Collaborator, Lone Wolf)", "xsd:string", ontology.Required()),
		datatype("exfilMethod", vocab+"ExfiltrationMethod", "Method used for data exfiltration", "xsd:string"),
		object("behaviorPattern", obs+"behaviorPattern", "Pattern of user behavior", "observable:ObservablePattern"),
		object("detectionSource", uco.ToolNamespace+"detectionSource", "Source system that detected the threat", "tool:Tool"),
		datatype("accessLevel", vocab+"AccessLevel", "User's system access level", "xsd:string", ontology.Required()),
		datatype("impactAssessment", vocab+"ImpactAssessment", "Assessment of potential damage", "xsd:string"),
		object("resourcesAccessed", obs+"resourcesAccessed", "Resources accessed during activity",
			"observable:ObservableObject"),
	}

	return register(cat, classes, props)
}

func insiderThreatCollections() []Collection {
	return []Collection{
		investigativeActions("insider threat"),
		{
			Field:       "systemMonitoring",
			Description: "System monitoring data collected during investigation",
			ItemType:    "case:SystemMonitoring",
			Fields: []Field{
				{Name: "monitoringType", Type: "string"},
				{Name: "timestamp", Type: "string", Format: "date-time"},
				{Name: "activity", Type: "string"},
			},
		},
	}
}
