package ledger

import (
	"fmt"
	"strconv"

	"organizer/cmd/client/cmd/types"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var SpendCmd = &cobra.Command{
	Use:   "spend <amount>",
	Short: "Потратить монеты",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd)
		if err != nil {
			return err
		}

		amount, err := strconv.Atoi(args[0])
		if err != nil || amount <= 0 {
			return fmt.Errorf("неверное количество монет: %s", args[0])
		}

		ledger := app.Ledger()
		s := ledger.Load(cmd.Context())

		if !ledger.SpendCoins(cmd.Context(), amount) {
			return fmt.Errorf("недостаточно монет: есть %d, нужно %d", s.Ledger.Coins, amount)
		}

		color.Green("-%d монет", amount)
		printState(ledger.State())
		return nil
	},
}
