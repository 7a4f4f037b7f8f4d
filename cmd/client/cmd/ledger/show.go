package ledger

import (
	"fmt"

	"organizer/cmd/client/cmd/types"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var ShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Показать прогресс",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		s := app.Ledger().Load(cmd.Context())
		if s.DailyBonus {
			color.Yellow("🎁 Начислен ежедневный бонус")
		}
		printState(s)

		if len(s.Achievements) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Достижения:")
		for _, a := range s.Achievements {
			name := a.Name
			if name == "" {
				name = a.Code
			}
			fmt.Printf("  🏆 %s", name)
			if a.Description != "" {
				fmt.Printf(" - %s", a.Description)
			}
			fmt.Println()
		}
		return nil
	},
}
