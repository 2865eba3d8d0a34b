// Package catalog holds the fixed ISO/IEC 27001:2022 Annex A control
// catalog: 93 controls across the four domains (A.5 organizational,
// A.6 people, A.7 physical, A.8 technological). Every organization gets
// one Control row and one SoA item per catalog entry at provisioning time.
package catalog

type Entry struct {
	ID     string // e.g. "A.8.13"
	Title  string
	Domain string // "A.5" .. "A.8"
}

var controls = []Entry{
	// A.5 - Organizational controls (37)
	{ID: "A.5.1", Title: "Policies for information security", Domain: "A.5"},
	{ID: "A.5.2", Title: "Information security roles and responsibilities", Domain: "A.5"},
	{ID: "A.5.3", Title: "Segregation of duties", Domain: "A.5"},
	{ID: "A.5.4", Title: "Management responsibilities", Domain: "A.5"},
	{ID: "A.5.5", Title: "Contact with authorities", Domain: "A.5"},
	{ID: "A.5.6", Title: "Contact with special interest groups", Domain: "A.5"},
	{ID: "A.5.7", Title: "Threat intelligence", Domain: "A.5"},
	{ID: "A.5.8", Title: "Information security in project management", Domain: "A.5"},
	{ID: "A.5.9", Title: "Inventory of information and other associated assets", Domain: "A.5"},
	{ID: "A.5.10", Title: "Acceptable use of information and other associated assets", Domain: "A.5"},
	{ID: "A.5.11", Title: "Return of assets", Domain: "A.5"},
	{ID: "A.5.12", Title: "Classification of information", Domain: "A.5"},
	{ID: "A.5.13", Title: "Labelling of information", Domain: "A.5"},
	{ID: "A.5.14", Title: "Information transfer", Domain: "A.5"},
	{ID: "A.5.15", Title: "Access control", Domain: "A.5"},
	{ID: "A.5.16", Title: "Identity management", Domain: "A.5"},
	{ID: "A.5.17", Title: "Authentication information", Domain: "A.5"},
	{ID: "A.5.18", Title: "Access rights", Domain: "A.5"},
	{ID: "A.5.19", Title: "Information security in supplier relationships", Domain: "A.5"},
	{ID: "A.5.20", Title: "Addressing information security within supplier agreements", Domain: "A.5"},
	{ID: "A.5.21", Title: "Managing information security in the ICT supply chain", Domain: "A.5"},
	{ID: "A.5.22", Title: "Monitoring, review and change management of supplier services", Domain: "A.5"},
	{ID: "A.5.23", Title: "Information security for use of cloud services", Domain: "A.5"},
	{ID: "A.5.24", Title: "Information security incident management planning and preparation", Domain: "A.5"},
	{ID: "A.5.25", Title: "Assessment and decision on information security events", Domain: "A.5"},
	{ID: "A.5.26", Title: "Response to information security incidents", Domain: "A.5"},
	{ID: "A.5.27", Title: "Learning from information security incidents", Domain: "A.5"},
	{ID: "A.5.28", Title: "Collection of evidence", Domain: "A.5"},
	{ID: "A.5.29", Title: "Information security during disruption", Domain: "A.5"},
	{ID: "A.5.30", Title: "ICT readiness for business continuity", Domain: "A.5"},
	{ID: "A.5.31", Title: "Legal, statutory, regulatory and contractual requirements", Domain: "A.5"},
	{ID: "A.5.32", Title: "Intellectual property rights", Domain: "A.5"},
	{ID: "A.5.33", Title: "Protection of records", Domain: "A.5"},
	{ID: "A.5.34", Title: "Privacy and protection of PII", Domain: "A.5"},
	{ID: "A.5.35", Title: "Independent review of information security", Domain: "A.5"},
	{ID: "A.5.36", Title: "Compliance with policies, rules and standards for information security", Domain: "A.5"},
	{ID: "A.5.37", Title: "Documented operating procedures", Domain: "A.5"},

	// A.6 - People controls (8)
	{ID: "A.6.1", Title: "Screening", Domain: "A.6"},
	{ID: "A.6.2", Title: "Terms and conditions of employment", Domain: "A.6"},
	{ID: "A.6.3", Title: "Information security awareness, education and training", Domain: "A.6"},
	{ID: "A.6.4", Title: "Disciplinary process", Domain: "A.6"},
	{ID: "A.6.5", Title: "Responsibilities after termination or change of employment", Domain: "A.6"},
	{ID: "A.6.6", Title: "Confidentiality or non-disclosure agreements", Domain: "A.6"},
	{ID: "A.6.7", Title: "Remote working", Domain: "A.6"},
	{ID: "A.6.8", Title: "Information security event reporting", Domain: "A.6"},

	// A.7 - Physical controls (14)
	{ID: "A.7.1", Title: "Physical security perimeters", Domain: "A.7"},
	{ID: "A.7.2", Title: "Physical entry", Domain: "A.7"},
	{ID: "A.7.3", Title: "Securing offices, rooms and facilities", Domain: "A.7"},
	{ID: "A.7.4", Title: "Physical security monitoring", Domain: "A.7"},
	{ID: "A.7.5", Title: "Protecting against physical and environmental threats", Domain: "A.7"},
	{ID: "A.7.6", Title: "Working in secure areas", Domain: "A.7"},
	{ID: "A.7.7", Title: "Clear desk and clear screen", Domain: "A.7"},
	{ID: "A.7.8", Title: "Equipment siting and protection", Domain: "A.7"},
	{ID: "A.7.9", Title: "Security of assets off-premises", Domain: "A.7"},
	{ID: "A.7.10", Title: "Storage media", Domain: "A.7"},
	{ID: "A.7.11", Title: "Supporting utilities", Domain: "A.7"},
	{ID: "A.7.12", Title: "Cabling security", Domain: "A.7"},
	{ID: "A.7.13", Title: "Equipment maintenance", Domain: "A.7"},
	{ID: "A.7.14", Title: "Secure disposal or re-use of equipment", Domain: "A.7"},

	// A.8 - Technological controls (34)
	{ID: "A.8.1", Title: "User endpoint devices", Domain: "A.8"},
	{ID: "A.8.2", Title: "Privileged access rights", Domain: "A.8"},
	{ID: "A.8.3", Title: "Information access restriction", Domain: "A.8"},
	{ID: "A.8.4", Title: "Access to source code", Domain: "A.8"},
	{ID: "A.8.5", Title: "Secure authentication", Domain: "A.8"},
	{ID: "A.8.6", Title: "Capacity management", Domain: "A.8"},
	{ID: "A.8.7", Title: "Protection against malware", Domain: "A.8"},
	{ID: "A.8.8", Title: "Management of technical vulnerabilities", Domain: "A.8"},
	{ID: "A.8.9", Title: "Configuration management", Domain: "A.8"},
	{ID: "A.8.10", Title: "Information deletion", Domain: "A.8"},
	{ID: "A.8.11", Title: "Data masking", Domain: "A.8"},
	{ID: "A.8.12", Title: "Data leakage prevention", Domain: "A.8"},
	{ID: "A.8.13", Title: "Information backup", Domain: "A.8"},
	{ID: "A.8.14", Title: "Redundancy of information processing facilities", Domain: "A.8"},
	{ID: "A.8.15", Title: "Logging", Domain: "A.8"},
	{ID: "A.8.16", Title: "Monitoring activities", Domain: "A.8"},
	{ID: "A.8.17", Title: "Clock synchronization", Domain: "A.8"},
	{ID: "A.8.18", Title: "Use of privileged utility programs", Domain: "A.8"},
	{ID: "A.8.19", Title: "Installation of software on operational systems", Domain: "A.8"},
	{ID: "A.8.20", Title: "Networks security", Domain: "A.8"},
	{ID: "A.8.21", Title: "Security of network services", Domain: "A.8"},
	{ID: "A.8.22", Title: "Segregation of networks", Domain: "A.8"},
	{ID: "A.8.23", Title: "Web filtering", Domain: "A.8"},
	{ID: "A.8.24", Title: "Use of cryptography", Domain: "A.8"},
	{ID: "A.8.25", Title: "Secure development life cycle", Domain: "A.8"},
	{ID: "A.8.26", Title: "Application security requirements", Domain: "A.8"},
	{ID: "A.8.27", Title: "Secure system architecture and engineering principles", Domain: "A.8"},
	{ID: "A.8.28", Title: "Secure coding", Domain: "A.8"},
	{ID: "A.8.29", Title: "Security testing in development and acceptance", Domain: "A.8"},
	{ID: "A.8.30", Title: "Outsourced development", Domain: "A.8"},
	{ID: "A.8.31", Title: "Separation of development, test and production environments", Domain: "A.8"},
	{ID: "A.8.32", Title: "Change management", Domain: "A.8"},
	{ID: "A.8.33", Title: "Test information", Domain: "A.8"},
	{ID: "A.8.34", Title: "Protection of information systems during audit testing", Domain: "A.8"},
}

// Count is the number of Annex A controls. The controls progress
// percentage is computed against this denominator.
const Count = 93

var byID = func() map[string]Entry {
	m := make(map[string]Entry, len(controls))
	for _, c := range controls {
		m[c.ID] = c
	}
	return m
}()

// Controls returns the full catalog in Annex A order.
func Controls() []Entry {
	out := make([]Entry, len(controls))
	copy(out, controls)
	return out
}

// Lookup returns the catalog entry for an Annex A reference.
func Lookup(id string) (Entry, bool) {
	e, ok := byID[id]
	return e, ok
}
