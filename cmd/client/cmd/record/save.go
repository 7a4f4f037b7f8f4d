package record

import (
	"fmt"

	"organizer/internal/app/client"
	"organizer/internal/domain/record"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	saveKind   string
	saveScope  string
	saveID     string
	saveTitle  string
	saveFields map[string]string
)

var SaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Создать или обновить запись",
	Long: `Без --id создает новую запись и начисляет за нее монеты,
с --id обновляет существующую. Запись всегда сохраняется в локальный кэш,
даже если сервер недоступен.

Пример:
  organizer record save --kind task --scope FAMILY --title "Купить билеты" --field due=2026-04-01`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, f, err := facadeFor(cmd, saveKind)
		if err != nil {
			return err
		}

		payload := make(map[string]any, len(saveFields)+1)
		for k, v := range saveFields {
			payload[k] = v
		}
		if saveTitle != "" {
			payload["title"] = saveTitle
		}

		created := saveID == ""
		res := f.Save(cmd.Context(), record.Record{ID: saveID, Scope: saveScope, Payload: payload})
		warnFallback(res.Source, res.RemoteErr)

		color.Green("✓ Запись сохранена")
		printRecord(res.Value)

		if created {
			award(cmd, app, f.Kind())
		}
		return nil
	},
}

func award(cmd *cobra.Command, app *client.App, kind record.Kind) {
	action, amount, ok := client.RewardFor(kind)
	if !ok {
		return
	}

	ledger := app.Ledger()
	ledger.Load(cmd.Context())
	ledger.AddCoins(cmd.Context(), amount, action)

	s := ledger.State()
	fmt.Printf("+%d монет | Монеты: %d | Уровень: %d\n", amount, s.Ledger.Coins, s.Ledger.Level)
}

func init() {
	SaveCmd.Flags().StringVarP(&saveKind, "kind", "k", string(record.KindNote), "вид записи")
	SaveCmd.Flags().StringVarP(&saveScope, "scope", "s", "", "пространство (FAMILY, WORK, ...)")
	SaveCmd.Flags().StringVar(&saveID, "id", "", "ID записи для обновления")
	SaveCmd.Flags().StringVarP(&saveTitle, "title", "t", "", "заголовок")
	SaveCmd.Flags().StringToStringVar(&saveFields, "field", nil, "дополнительные поля key=value")
	_ = SaveCmd.MarkFlagRequired("scope")
}
