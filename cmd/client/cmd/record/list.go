// cmd/client/cmd/record/list.go
package record

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"organizer/internal/domain/record"

	"github.com/spf13/cobra"
)

var (
	listKind   string
	listScope  string
	listFormat string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список записей",
	Long: `Просмотр записей одного вида в пространстве.

Если сервер недоступен, показываются записи из локального кэша.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, f, err := facadeFor(cmd, listKind)
		if err != nil {
			return err
		}

		res := f.List(cmd.Context(), listScope)
		warnFallback(res.Source, res.RemoteErr)

		switch listFormat {
		case "json":
			return printRecordsJSON(res.Value)
		case "table":
			return printRecordsTable(res.Value)
		default:
			return printRecordsSimple(res.Value)
		}
	},
}

func printRecordsSimple(records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Записи не найдены")
		return nil
	}

	fmt.Printf("Найдено записей: %d\n\n", len(records))
	for i, rec := range records {
		fmt.Printf("%d. ", i+1)
		printRecord(rec)
		fmt.Println()
	}

	return nil
}

func printRecordsTable(records []record.Record) error {
	if len(records) == 0 {
		fmt.Println("Записи не найдены")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tПространство\tНазвание\tОбновлено\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t\n")

	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
			rec.ID,
			rec.Scope,
			truncate(titleOf(rec), 30),
			rec.UpdatedAt.Local().Format("2006-01-02"),
		)
	}

	w.Flush()
	fmt.Printf("\nВсего записей: %d\n", len(records))
	return nil
}

func printRecordsJSON(records []record.Record) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

func init() {
	ListCmd.Flags().StringVarP(&listKind, "kind", "k", string(record.KindNote), "вид записи")
	ListCmd.Flags().StringVarP(&listScope, "scope", "s", "", "пространство (FAMILY, WORK, ...)")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "simple", "формат вывода (simple, table, json)")
	_ = ListCmd.MarkFlagRequired("scope")
}
