package ledger

import (
	"fmt"
	"strings"

	"organizer/internal/app/client"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// LedgerCmd - родительская команда для монет, опыта и достижений
var LedgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Монеты, уровень и достижения",
	Long: `Просмотр прогресса, начисление монет за действия (молитва, чтение Корана,
зикр) и трата монет.`,
}

func printState(s client.State) {
	bold := color.New(color.Bold)
	bold.Printf("Уровень %d\n", s.Ledger.Level)
	fmt.Printf("Монеты: %s | Опыт: %d | Действий: %d\n",
		color.YellowString("%d", s.Ledger.Coins), s.Ledger.XP, s.Ledger.TotalActions)

	progressBar(s.Ledger.XP % 100)

	if s.Ledger.DailyStreak > 0 {
		fmt.Printf("Серия: %d дн.\n", s.Ledger.DailyStreak)
	}
	if s.Source == client.SourceCache {
		color.Yellow("⚠️  Локальный снимок, сервер недоступен")
	}
}

func progressBar(pct int) {
	const width = 20
	filled := pct * width / 100
	fmt.Printf("[%s%s] %d/100 до следующего уровня\n",
		color.GreenString(strings.Repeat("█", filled)), strings.Repeat("░", width-filled), pct)
}
