package record

import (
	"fmt"

	"organizer/internal/domain/record"

	"github.com/spf13/cobra"
)

var deleteKind string

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить запись",
	Long:  `Удаляет запись на сервере и из локального кэша.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, f, err := facadeFor(cmd, deleteKind)
		if err != nil {
			return err
		}

		if !f.Delete(cmd.Context(), args[0]) {
			return fmt.Errorf("запись %s не найдена", args[0])
		}

		fmt.Println("✓ Запись удалена")
		return nil
	},
}

func init() {
	DeleteCmd.Flags().StringVarP(&deleteKind, "kind", "k", string(record.KindNote), "вид записи")
}
