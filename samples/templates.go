package samples

import (
	"time"

	"github.com/c360studio/caseschema/investigation"
)

type actionTemplate struct {
	name        string
	description string
	started     time.Duration // before now
	ended       time.Duration
}

// Item values of type time.Duration are offsets before now and are rendered
// as date-time strings.
type collectionTemplate struct {
	field    string
	itemType string
	idPrefix string
	items    []map[string]any
}

type template struct {
	name         string
	description  string
	investigator string
	action       actionTemplate
	collections  []collectionTemplate
	victim       string
}

var templates = map[investigation.Type]template{
	investigation.CyberIntrusion: {
		name:         "APT29 Intrusion Investigation",
		description:  "Investigation of suspected APT29 intrusion",
		investigator: "John Smith",
		action: actionTemplate{
			name:        "Network Traffic Analysis",
			description: "Analysis of suspicious network traffic",
			started:     2 * time.Hour,
			ended:       time.Hour,
		},
		collections: []collectionTemplate{
			{
				field:    "observables",
				itemType: "observable:CyberItem",
				idPrefix: "observable",
				items: []map[string]any{{
					"name":           "Suspicious Network Connection",
					"observableType": "NetworkTraffic",
					"hasChanged":     false,
					"state":          "Observed",
				}},
			},
			{
				field:    "subjects",
				itemType: "core:Identity",
				idPrefix: "subject",
				items: []map[string]any{{
					"name":         "Compromised Service Account",
					"identityType": "ServiceAccount",
					"role":         "Victim",
				}},
			},
		},
	},
	investigation.Murder: {
		name:         "Downtown Homicide Investigation",
		description:  "Investigation of homicide at 123 Main St",
		investigator: "Jane Doe",
		action: actionTemplate{
			name:        "Crime Scene Processing",
			description: "Initial crime scene documentation and evidence collection",
			started:     24 * time.Hour,
			ended:       20 * time.Hour,
		},
		collections: []collectionTemplate{{
			field:    "physicalEvidence",
			itemType: "case:PhysicalEvidence",
			idPrefix: "evidence",
			items: []map[string]any{{
				"name":         "Weapon",
				"evidenceType": "Knife",
				"location":     "Kitchen",
				"condition":    "Intact",
			}},
		}},
	},
	investigation.ChildAbuse: {
		name:         "CyberTipline Report Investigation",
		description:  "Investigation based on NCMEC CyberTipline Report #12345",
		investigator: "Sarah Johnson",
		action: actionTemplate{
			name:        "Digital Device Analysis",
			description: "Forensic analysis of seized devices",
			started:     48 * time.Hour,
			ended:       24 * time.Hour,
		},
		collections: []collectionTemplate{{
			field:    "digitalEvidence",
			itemType: "case:DigitalEvidence",
			idPrefix: "evidence",
			items: []map[string]any{{
				"name":           "Image File",
				"evidenceType":   "CSAM",
				"hash":           "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
				"classification": "Category 1",
			}},
		}},
		victim: "Protected Identity",
	},
	investigation.InsiderThreat: {
		name:         "Data Exfiltration Investigation",
		description:  "Investigation of unauthorized data transfer by employee",
		investigator: "Michael Chen",
		action: actionTemplate{
			name:        "Network Log Analysis",
			description: "Analysis of network traffic logs for data exfiltration",
			started:     12 * time.Hour,
			ended:       8 * time.Hour,
		},
		collections: []collectionTemplate{
			{
				field:    "systemMonitoring",
				itemType: "case:SystemMonitoring",
				idPrefix: "monitoring",
				items: []map[string]any{{
					"name":           "Large File Transfer Alert",
					"monitoringType": "DataTransfer",
					"timestamp":      10 * time.Hour,
					"activity":       "Upload of 2GB file to external storage",
				}},
			},
			{
				field:    "userActivity",
				itemType: "case:UserActivity",
				idPrefix: "activity",
				items: []map[string]any{{
					"name":         "Suspicious Login",
					"activityType": "Authentication",
					"timestamp":    11 * time.Hour,
					"description":  "Off-hours system access from unusual location",
				}},
			},
		},
	},
	investigation.CaseInvestigation: {
		name:         "Evidence Intake Investigation",
		description:  "Generic CASE investigation with chain-of-custody actions",
		investigator: "Alex Rivera",
		action: actionTemplate{
			name:        "Evidence Intake",
			description: "Receipt and registration of submitted exhibits",
			started:     6 * time.Hour,
			ended:       5 * time.Hour,
		},
	},
}
