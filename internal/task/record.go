package task

// Sentinel marks a field the extraction recognized but could not determine.
const Sentinel = "N/A"

// Field names as the extraction prompt enumerates them.
const (
	FieldTask         = "task"
	FieldWithWhom     = "with_whom"
	FieldTime         = "time"
	FieldLocation     = "location"
	FieldAgenda       = "agenda"
	FieldDuration     = "duration"
	FieldParticipants = "participants"
)

// Record is the structured form of one scheduling request. After Normalize
// every scalar is non-empty (Sentinel stands in for anything absent) and
// Participants is never an empty slice.
type Record struct {
	Task         string   `json:"task"`
	WithWhom     string   `json:"with_whom"`
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Agenda       string   `json:"agenda"`
	Duration     string   `json:"duration"`
	Participants []string `json:"participants"`
}

// Fields flattens the record back into the loose mapping shape the parser
// produces. Normalize(r.Fields()) == r for any normalized r.
func (r Record) Fields() map[string]any {
	parts := make([]any, 0, len(r.Participants))
	for _, p := range r.Participants {
		parts = append(parts, p)
	}
	return map[string]any{
		FieldTask:         r.Task,
		FieldWithWhom:     r.WithWhom,
		FieldTime:         r.Time,
		FieldLocation:     r.Location,
		FieldAgenda:       r.Agenda,
		FieldDuration:     r.Duration,
		FieldParticipants: parts,
	}
}
