package uco

import "github.com/c360studio/semstreams/vocabulary"

// RDFType asserts the class of an entity.
const RDFType = "rdf.syntax.type"

// Core predicates shared by every UcoObject.
const (
	// CoreName is the human-readable name of an object.
	CoreName = "uco.core.name"

	// CoreDescription is free-text description of an object.
	CoreDescription = "uco.core.description"

	// CoreCreatedBy links an object to the identity that created it.
	// Domain: core:UcoObject, Range: core:IdentityAbstraction
	CoreCreatedBy = "uco.core.created_by"

	// CoreObjectCreatedTime is when the object was created (xsd:dateTime).
	CoreObjectCreatedTime = "uco.core.object_created_time"

	// CoreModifiedTime is when the object was last modified (xsd:dateTime).
	CoreModifiedTime = "uco.core.modified_time"

	// CoreSpecVersion is the UCO specification version the object conforms to.
	CoreSpecVersion = "uco.core.spec_version"
)

// Investigation predicates.
const (
	// InvestigativeAction links an investigation to an action taken during it.
	// Domain: investigation:Investigation, Range: investigation:InvestigativeAction
	InvestigativeAction = "case.investigation.investigative_action"

	// InvestigationStatus is the status of an investigation or action.
	InvestigationStatus = "case.investigation.status"

	// InvestigationStartTime is when an action or investigation started.
	InvestigationStartTime = "case.investigation.start_time"

	// InvestigationEndTime is when an action or investigation ended.
	InvestigationEndTime = "case.investigation.end_time"

	// AuthorizationIdentifier identifies the authorization under which an action was taken.
	AuthorizationIdentifier = "case.investigation.authorization_identifier"

	// Observables links an investigation to observed cyber items.
	Observables = "case.investigation.observable"

	// Subjects links an investigation to the identities involved.
	Subjects = "case.investigation.subject"

	// PhysicalEvidence links an investigation to collected physical evidence.
	PhysicalEvidence = "case.investigation.physical_evidence"

	// DigitalEvidence links an investigation to collected digital evidence.
	DigitalEvidence = "case.investigation.digital_evidence"

	// SystemMonitoring links an investigation to collected monitoring data.
	SystemMonitoring = "case.investigation.system_monitoring"

	// UserActivity links an investigation to recorded user activity.
	UserActivity = "case.investigation.user_activity"

	// VictimIdentification links an investigation to victim identification data.
	VictimIdentification = "case.investigation.victim_identification"
)

// Evidence item predicates.
const (
	ObservableType  = "uco.observable.observable_type"
	HasChanged      = "uco.observable.has_changed"
	ObservableState = "uco.observable.state"
	IdentityType    = "uco.identity.identity_type"
	Role            = "uco.role.role"
	EvidenceType    = "case.evidence.evidence_type"
	Location        = "uco.location.location"
	Condition       = "case.evidence.condition"
	Hash            = "uco.observable.hash"
	Classification  = "case.evidence.classification"
	MonitoringType  = "case.monitoring.monitoring_type"
	Timestamp       = "case.monitoring.timestamp"
	Activity        = "case.monitoring.activity"
	ActivityType    = "case.monitoring.activity_type"
	User            = "case.monitoring.user"
	VictimAgeGroup  = "case.victim.age_group"
)

// fieldPredicates maps JSON record keys to predicates.
var fieldPredicates = map[string]string{
	"@type":                   RDFType,
	"name":                    CoreName,
	"description":             CoreDescription,
	"createdBy":               CoreCreatedBy,
	"objectCreatedTime":       CoreObjectCreatedTime,
	"modifiedTime":            CoreModifiedTime,
	"specVersion":             CoreSpecVersion,
	"investigativeActions":    InvestigativeAction,
	"status":                  InvestigationStatus,
	"startTime":               InvestigationStartTime,
	"endTime":                 InvestigationEndTime,
	"authorizationIdentifier": AuthorizationIdentifier,
	"observables":             Observables,
	"subjects":                Subjects,
	"physicalEvidence":        PhysicalEvidence,
	"digitalEvidence":         DigitalEvidence,
	"systemMonitoring":        SystemMonitoring,
	"userActivity":            UserActivity,
	"victimIdentification":    VictimIdentification,
	"observableType":          ObservableType,
	"hasChanged":              HasChanged,
	"state":                   ObservableState,
	"identityType":            IdentityType,
	"role":                    Role,
	"evidenceType":            EvidenceType,
	"location":                Location,
	"condition":               Condition,
	"hash":                    Hash,
	"classification":          Classification,
	"monitoringType":          MonitoringType,
	"timestamp":               Timestamp,
	"activity":                Activity,
	"activityType":            ActivityType,
	"user":                    User,
	"ageGroup":                VictimAgeGroup,
}

// FieldPredicate returns the predicate for a JSON record key.
func FieldPredicate(field string) (string, bool) {
	p, ok := fieldPredicates[field]
	return p, ok
}

// PredicateField returns the JSON record key for a predicate.
func PredicateField(predicate string) (string, bool) {
	for field, p := range fieldPredicates {
		if p == predicate {
			return field, true
		}
	}
	return "", false
}

func init() {
	vocabulary.Register(RDFType,
		vocabulary.WithDescription("Class membership of an entity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"))

	// Core
	vocabulary.Register(CoreName,
		vocabulary.WithDescription("Name of the object"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(CoreNamespace+"name"))

	vocabulary.Register(CoreDescription,
		vocabulary.WithDescription("Description of the object"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(CoreNamespace+"description"))

	vocabulary.Register(CoreCreatedBy,
		vocabulary.WithDescription("Identity that created the object"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(CoreNamespace+"createdBy"))

	vocabulary.Register(CoreObjectCreatedTime,
		vocabulary.WithDescription("Time the object was created"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(CoreNamespace+"objectCreatedTime"))

	vocabulary.Register(CoreModifiedTime,
		vocabulary.WithDescription("Time the object was last modified"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(CoreNamespace+"modifiedTime"))

	vocabulary.Register(CoreSpecVersion,
		vocabulary.WithDescription("UCO specification version"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(CoreNamespace+"specVersion"))

	// Investigation
	vocabulary.Register(InvestigativeAction,
		vocabulary.WithDescription("Action taken during the investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"investigativeAction"))

	vocabulary.Register(InvestigationStatus,
		vocabulary.WithDescription("Status of the investigation or action"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"investigationStatus"))

	vocabulary.Register(InvestigationStartTime,
		vocabulary.WithDescription("Start time"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(ActionNamespace+"startTime"))

	vocabulary.Register(InvestigationEndTime,
		vocabulary.WithDescription("End time"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(ActionNamespace+"endTime"))

	vocabulary.Register(AuthorizationIdentifier,
		vocabulary.WithDescription("Identifier of the authorizing document"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"authorizationIdentifier"))

	vocabulary.Register(Observables,
		vocabulary.WithDescription("Digital artifacts observed during investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"observables"))

	vocabulary.Register(Subjects,
		vocabulary.WithDescription("Subjects involved in the investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"subjects"))

	vocabulary.Register(PhysicalEvidence,
		vocabulary.WithDescription("Physical evidence collected during investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"physicalEvidence"))

	vocabulary.Register(DigitalEvidence,
		vocabulary.WithDescription("Digital evidence collected during investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"digitalEvidence"))

	vocabulary.Register(SystemMonitoring,
		vocabulary.WithDescription("System monitoring data collected during investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"systemMonitoring"))

	vocabulary.Register(UserActivity,
		vocabulary.WithDescription("User activity recorded during investigation"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"userActivity"))

	vocabulary.Register(VictimIdentification,
		vocabulary.WithDescription("Victim identification information"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(InvestigationNamespace+"victimIdentification"))

	// Evidence items
	vocabulary.Register(ObservableType,
		vocabulary.WithDescription("Kind of observable cyber item"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ObservableNamespace+"observableType"))

	vocabulary.Register(HasChanged,
		vocabulary.WithDescription("Whether the observable changed during the incident"),
		vocabulary.WithDataType("bool"),
		vocabulary.WithIRI(ObservableNamespace+"hasChanged"))

	vocabulary.Register(ObservableState,
		vocabulary.WithDescription("State of the observable"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ObservableNamespace+"state"))

	vocabulary.Register(IdentityType,
		vocabulary.WithDescription("Kind of identity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(IdentityNamespace+"identityType"))

	vocabulary.Register(Role,
		vocabulary.WithDescription("Role of the subject in the investigation"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(RoleNamespace+"role"))

	vocabulary.Register(EvidenceType,
		vocabulary.WithDescription("Type of evidence collected"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"evidenceType"))

	vocabulary.Register(Location,
		vocabulary.WithDescription("Where the evidence was found"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(LocationNamespace+"location"))

	vocabulary.Register(Condition,
		vocabulary.WithDescription("Condition of the evidence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"condition"))

	vocabulary.Register(Hash,
		vocabulary.WithDescription("Hash of the digital evidence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(ObservableNamespace+"hash"))

	vocabulary.Register(Classification,
		vocabulary.WithDescription("Classification of the digital evidence"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"classification"))

	vocabulary.Register(MonitoringType,
		vocabulary.WithDescription("Kind of system monitoring"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"monitoringType"))

	vocabulary.Register(Timestamp,
		vocabulary.WithDescription("Time of the monitored event"),
		vocabulary.WithDataType("datetime"),
		vocabulary.WithIRI(InvestigationNamespace+"timestamp"))

	vocabulary.Register(Activity,
		vocabulary.WithDescription("Monitored activity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"activity"))

	vocabulary.Register(ActivityType,
		vocabulary.WithDescription("Kind of user activity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"activityType"))

	vocabulary.Register(User,
		vocabulary.WithDescription("User account performing the activity"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"user"))

	vocabulary.Register(VictimAgeGroup,
		vocabulary.WithDescription("Age group of the identified victim"),
		vocabulary.WithDataType("string"),
		vocabulary.WithIRI(InvestigationNamespace+"ageGroup"))
}
