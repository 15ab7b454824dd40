package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateStepProjectDetails(t *testing.T) {
	t.Run("blank fields", func(t *testing.T) {
		res := ValidateStep(StepProjectDetails, State{})
		require.False(t, res.Valid())
		require.Len(t, res.Errors, 2)
		require.Contains(t, res.Errors, "projectName")
		require.Contains(t, res.Errors, "locationType")
		require.Equal(t, "Complete the required project details to continue.", res.Message)
	})

	t.Run("whitespace name counts as absent", func(t *testing.T) {
		res := ValidateStep(StepProjectDetails, State{ProjectName: "   ", LocationType: "urban"})
		require.False(t, res.Valid())
		require.Contains(t, res.Errors, "projectName")
		require.NotContains(t, res.Errors, "locationType")
	})

	t.Run("complete", func(t *testing.T) {
		res := ValidateStep(StepProjectDetails, State{ProjectName: "Hilltop House", LocationType: "rural"})
		require.True(t, res.Valid())
		require.Empty(t, res.Message)
	})
}

func TestValidateStepBuildingSize(t *testing.T) {
	res := ValidateStep(StepBuildingSize, State{FloorPlanSize: 0})
	require.False(t, res.Valid())
	require.Contains(t, res.Errors, "floorPlanSize")
	require.Contains(t, res.Errors, "buildingType")

	res = ValidateStep(StepBuildingSize, State{FloorPlanSize: 120, BuildingType: "3bed"})
	require.True(t, res.Valid())
}

func TestValidateStepMaterials(t *testing.T) {
	t.Run("stage scope needs stages", func(t *testing.T) {
		res := ValidateStep(StepMaterials, State{BrickType: "common", Scope: "stage"})
		require.False(t, res.Valid())
		require.Contains(t, res.Errors, "stages")
	})

	t.Run("full scope does not", func(t *testing.T) {
		res := ValidateStep(StepMaterials, State{BrickType: "common", Scope: "full_house"})
		require.True(t, res.Valid())
	})

	t.Run("stage scope with selection", func(t *testing.T) {
		res := ValidateStep(StepMaterials, State{BrickType: "common", Scope: "stage", SelectedStages: []string{"roofing"}})
		require.True(t, res.Valid())
	})
}

func TestValidateStepLabor(t *testing.T) {
	res := ValidateStep(StepLabor, State{})
	require.False(t, res.Valid())
	require.Contains(t, res.Errors, "laborOption")

	res = ValidateStep(StepLabor, State{LaborOption: "include"})
	require.True(t, res.Valid())
}

func TestValidateStepIgnoresOtherSteps(t *testing.T) {
	// Step 1 must pass even when later steps are still blank.
	res := ValidateStep(StepProjectDetails, State{ProjectName: "x", LocationType: "urban"})
	require.True(t, res.Valid())
}
