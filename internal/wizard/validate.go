// Package wizard validates the multi-step project setup flow. Each
// step validates independently of every other step's state.
package wizard

import "strings"

// Step identifies a wizard page.
type Step int

const (
	StepProjectDetails Step = 1
	StepBuildingSize   Step = 2
	StepMaterials      Step = 3
	StepLabor          Step = 4
)

// State carries the fields collected so far. Only the fields belonging
// to the step under validation are consulted.
type State struct {
	ProjectName    string   `json:"projectName"`
	LocationType   string   `json:"locationType"`
	FloorPlanSize  float64  `json:"floorPlanSize"`
	BuildingType   string   `json:"buildingType"`
	BrickType      string   `json:"brickType"`
	Scope          string   `json:"scope"`
	SelectedStages []string `json:"selectedStages"`
	LaborOption    string   `json:"laborOption"`
}

// Result maps offending fields to messages plus a step summary. An
// empty Errors map means the step may advance.
type Result struct {
	Errors  map[string]string `json:"errors"`
	Message string            `json:"message,omitempty"`
}

// Valid reports whether the step passed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateStep checks the required fields of one step. A blank or
// whitespace-only project name counts as absent.
func ValidateStep(step Step, s State) Result {
	errs := map[string]string{}
	var message string

	switch step {
	case StepProjectDetails:
		if strings.TrimSpace(s.ProjectName) == "" {
			errs["projectName"] = "Project name is required"
		}
		if s.LocationType == "" {
			errs["locationType"] = "Select a location type"
		}
		if len(errs) > 0 {
			message = "Complete the required project details to continue."
		}
	case StepBuildingSize:
		if !(s.FloorPlanSize > 0) {
			errs["floorPlanSize"] = "Enter a valid floor plan size"
		}
		if s.BuildingType == "" {
			errs["buildingType"] = "Select a building type"
		}
		if len(errs) > 0 {
			message = "Tell us about the building before continuing."
		}
	case StepMaterials:
		if s.BrickType == "" {
			errs["brickType"] = "Select a brick or block type"
		}
		if s.Scope == "stage" && len(s.SelectedStages) == 0 {
			errs["stages"] = "Select at least one construction stage"
		}
		if len(errs) > 0 {
			message = "Choose your materials to continue."
		}
	case StepLabor:
		if s.LaborOption == "" {
			errs["laborOption"] = "Choose a labor option"
		}
		if len(errs) > 0 {
			message = "Select a labor preference to continue."
		}
	}

	return Result{Errors: errs, Message: message}
}
