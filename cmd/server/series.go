package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/repository"
	"github.com/user/seriestrack/internal/validation"
)

func newSeriesCommand(cc *commandContext) *cobra.Command {
	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "查看剧集记录",
	}
	seriesCmd.AddCommand(newSeriesListCommand(cc))
	return seriesCmd
}

func newSeriesListCommand(cc *commandContext) *cobra.Command {
	var userID int64
	var query model.SeriesFilterInput

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出某个用户的剧集记录",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user-id 必须为正整数")
			}
			filter, err := validation.ParseFilter(query)
			if err != nil {
				return err
			}

			db, err := cc.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer repository.Close(db)

			list, err := repository.NewRepositories(db).Series.ListByOwner(cmd.Context(), userID, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "没有记录")
				return nil
			}
			fmt.Fprintln(out, renderSeries(list))
			fmt.Fprintf(out, "共 %d 条\n", len(list))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "用户 ID")
	cmd.Flags().StringVar(&query.Status, "status", "", "按状态过滤（planned / watching / completed）")
	cmd.Flags().StringVar(&query.Rating, "rating", "", "按评分过滤")
	cmd.Flags().StringVar(&query.Title, "title", "", "按标题模糊匹配")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func renderSeries(list []*model.Series) string {
	headers := []string{"ID", "标题", "状态", "评分", "进度", "季数", "更新时间"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			strconv.FormatInt(s.ID, 10),
			s.Title,
			string(s.Status),
			strconv.FormatFloat(s.Rating, 'f', 1, 64),
			fmt.Sprintf("%d/%d", s.WatchedEpisodes, s.TotalEpisodes),
			strconv.Itoa(s.TotalSeasons),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable(headers, rows, aligns)
}
