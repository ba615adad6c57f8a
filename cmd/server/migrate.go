package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/seriestrack/internal/repository"
)

func newMigrateCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "创建或更新数据表",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := cc.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer repository.Close(db)

			if err := repository.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "数据库迁移完成")
			return nil
		},
	}
}
