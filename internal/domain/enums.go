package domain

type PlanStatus string

const (
	PlanPlanned    PlanStatus = "planned"
	PlanInProgress PlanStatus = "in_progress"
	PlanDone       PlanStatus = "done"
	PlanPaused     PlanStatus = "paused"
)

// ValidPlanStatuses is the canonical set of accepted plan status strings.
var ValidPlanStatuses = map[string]bool{
	"planned": true, "in_progress": true, "done": true, "paused": true,
}

type ReferenceType string

const (
	ReferenceNote     ReferenceType = "note"
	ReferenceDocument ReferenceType = "document"
	ReferenceLink     ReferenceType = "link"
)

// ValidReferenceTypes is the canonical set of accepted reference type strings.
var ValidReferenceTypes = map[string]bool{
	"note": true, "document": true, "link": true,
}

type DayType string

const (
	DayHoliday DayType = "holiday"
	DaySpecial DayType = "special"
)

// ValidDayTypes is the canonical set of accepted calendar day type strings.
var ValidDayTypes = map[string]bool{
	"holiday": true, "special": true,
}
