package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"vidserve"
	"vidserve/internal/config"
)

func init() {
	command := &cobra.Command{
		Use:   "serve",
		Short: "serve video range server",
		Long:  `serve video range server`,
		Run:   vidserve.Service.ServeCommand,
	}

	configs := []config.Config{
		vidserve.Service.ServerConfig,
	}

	cobra.OnInitialize(func() {
		for _, cfg := range configs {
			cfg.Set()
		}
		vidserve.Service.Preflight()
	})

	for _, cfg := range configs {
		if err := cfg.Init(command); err != nil {
			log.Panic().Err(err).Msg("unable to run serve command")
		}
	}

	root.AddCommand(command)
}
