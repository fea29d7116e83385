package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-engine/internal/physics"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Show the stage catalog",
	Long: `Lists every stage with the physics modifiers it applies.

Examples:
  minigame stages
  minigame stages --stages ./my-stages.yaml`,
	Run: runStages,
}

func init() {
	stagesCmd.Flags().StringVar(&flagStagesPath, "stages", "", "Path to custom stages.yaml")
}

func runStages(cmd *cobra.Command, args []string) {
	s, err := loadSetup()
	if err != nil {
		fail("loading configuration", err)
	}

	for _, st := range s.Catalog.Stages() {
		fmt.Printf("%s - %s\n", st.ID, st.Name)
		if st.Description != "" {
			fmt.Printf("  %s\n", st.Description)
		}
		fmt.Printf("  %s\n\n", describeModifiers(st.Modifiers))
	}
}

// describeModifiers renders the modifier values on one line.
func describeModifiers(m physics.Modifiers) string {
	line := fmt.Sprintf("gravity %.3g  friction %.3g  bounce %.3g  knockback x%.3g",
		m.Gravity, m.Friction, m.Bounce, m.KnockbackMultiplier)
	if m.Vortex != nil {
		line += fmt.Sprintf("  vortex %.3g at (%.2g, %.2g)", m.Vortex.Strength, m.Vortex.Center.X, m.Vortex.Center.Y)
	}
	return line
}
