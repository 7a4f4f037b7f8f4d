package ledger

import (
	"fmt"
	"strconv"

	"organizer/cmd/client/cmd/types"
	"organizer/internal/domain/progress"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var EarnCmd = &cobra.Command{
	Use:   "earn <action> <amount>",
	Short: "Начислить монеты за действие",
	Long: `Начисляет монеты и опыт за действие. Действия: prayer, quran, dhikr,
note, task, goal, shopping, event, habit.

Пример:
  organizer ledger earn dhikr 10`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		action := progress.Action(args[0])
		if err := action.Validate(); err != nil {
			return err
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("неверное количество монет: %s", args[1])
		}
		if err := progress.ValidateAmount(amount); err != nil {
			return err
		}

		ledger := app.Ledger()
		ledger.Load(cmd.Context())

		var before []progress.Achievement
		before = append(before, ledger.State().Achievements...)

		ledger.AddCoins(cmd.Context(), amount, action)
		color.Green("+%d монет", amount)

		ledger.Wait()
		s := ledger.State()
		printState(s)

		for _, a := range newAchievements(before, s.Achievements) {
			color.Magenta("🏆 Новое достижение: %s", a.Name)
		}
		return nil
	},
}

func newAchievements(before, after []progress.Achievement) []progress.Achievement {
	seen := make(map[string]struct{}, len(before))
	for _, a := range before {
		seen[a.Code] = struct{}{}
	}

	var out []progress.Achievement
	for _, a := range after {
		if _, ok := seen[a.Code]; !ok {
			out = append(out, a)
		}
	}
	return out
}
