package record

import (
	"fmt"

	"organizer/cmd/client/cmd/types"
	"organizer/internal/app/client"
	"organizer/internal/domain/record"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RecordCmd - родительская команда для всех операций с записями
var RecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Управление записями",
	Long: `Создание, просмотр, обновление и удаление заметок, покупок, задач,
целей, событий и привычек. Виды: note, shopping_item, task, goal, event, habit.`,
}

func facadeFor(cmd *cobra.Command, kind string) (*client.App, *client.Facade, error) {
	app, err := types.AppFrom(cmd)
	if err != nil {
		return nil, nil, err
	}

	k := record.Kind(kind)
	if err := k.Validate(); err != nil {
		return nil, nil, err
	}

	f, err := app.Records(k)
	if err != nil {
		return nil, nil, err
	}
	return app, f, nil
}

// warnFallback сообщает, что ответ получен из локального кэша
func warnFallback(source client.Source, remoteErr error) {
	if source == client.SourceCache && remoteErr != nil {
		color.Yellow("⚠️  Сервер недоступен (%s), данные из локального кэша", client.KindOf(remoteErr))
	}
}

func titleOf(rec record.Record) string {
	if t := rec.Title(); t != "" {
		return t
	}
	return "Без названия"
}

func truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return string(r[:length-3]) + "..."
}

func printRecord(rec record.Record) {
	fmt.Printf("%s [%s] %s\n", rec.Kind.DisplayName(), rec.Scope, titleOf(rec))
	fmt.Printf("   ID: %s | Создано: %s | Обновлено: %s\n",
		rec.ID,
		rec.CreatedAt.Local().Format("2006-01-02 15:04"),
		rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
}
