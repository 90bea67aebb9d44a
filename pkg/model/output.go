package model

// Status is the solve's terminal status (spec.md §4.8 "State machine").
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeLimit  Status = "TIME_LIMIT"
	StatusError      Status = "ERROR"
)

// Output is the full external output document (spec.md §6).
type Output struct {
	Success     bool         `json:"success"`
	Metadata    Metadata     `json:"metadata"`
	Assignments []Assignment `json:"assignments"`
}

// Metadata carries solve statistics and, on infeasibility, diagnostics.
type Metadata struct {
	Status          Status   `json:"status"`
	ObjectiveScore  *int64   `json:"objectiveScore"`
	RuntimeMs       int64    `json:"runtimeMs"`
	MipGap          *float64 `json:"mipGap"`
	NumCrew         int      `json:"numCrew"`
	NumSlots        int      `json:"numSlots"`
	SlotMinutes     int      `json:"slotMinutes"`
	NumAssignments  int      `json:"numAssignments"`
	Violations      []string `json:"violations"`
}

// Assignment is one crew-to-role-to-slot assignment record (spec.md §4.7).
type Assignment struct {
	CrewID    string `json:"crewId"`
	TaskType  string `json:"taskType"`
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
}
