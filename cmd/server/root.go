package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/user/seriestrack/internal/config"
	"github.com/user/seriestrack/internal/repository"
)

const serviceName = "seriestrack"

// version 构建时通过 -ldflags 注入
var version = "dev"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

// openDB 按配置连接数据库
func (c *commandContext) openDB(ctx context.Context) (*gorm.DB, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return repository.InitDB(ctx, cfg.Database.DSN(), repository.PoolConfig{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
}

func newRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           serviceName,
		Short:         "剧集观看进度服务",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "配置文件路径（默认 ./"+config.DefaultConfigFile+"）")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeriesCommand(ctx))

	return rootCmd
}
