package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/vidmeta/internal/adapter/scrapeservice"
	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/usecase"
	"github.com/user/vidmeta/pkg/utils"
)

var (
	fetchPlatform string
	fetchOutput   string
	fetchWatch    bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <video-url>",
	Short: "Run one submission and print the result",
	Example: `  vidmeta fetch "https://www.youtube.com/watch?v=dQw4w9WgXcQ" --platform youtube
  vidmeta fetch "https://www.tiktok.com/@user/video/1" --platform tiktok --output yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchPlatform, "platform", "p", "", "Platform: youtube or tiktok")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "text", "Output format: text, json or yaml")
	fetchCmd.Flags().BoolVarP(&fetchWatch, "watch", "w", false, "Print every state transition to stderr")
}

func runFetch(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat(fetchOutput)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	endpoint, err := utils.ResolveEndpoint(cfg.ScrapeServiceBaseURL, cfg.ScrapeServicePath)
	if err != nil {
		return fmt.Errorf("scrape service endpoint: %w", err)
	}
	client, err := scrapeservice.NewClient(endpoint, cfg.ScrapeTimeout(), logger)
	if err != nil {
		return err
	}

	controller := usecase.NewSubmissionController(client, logger)
	if fetchWatch {
		stderr := cmd.ErrOrStderr()
		unsubscribe := controller.Subscribe(func(s entity.SubmissionState) {
			writeTransition(stderr, s)
		})
		defer unsubscribe()
	}

	controller.SetURL(args[0])
	var state entity.SubmissionState
	if fetchPlatform != "" {
		state = controller.SelectPlatform(cmd.Context(), entity.ParsePlatform(fetchPlatform))
	} else {
		state = controller.Submit(cmd.Context())
	}

	if err := writeState(cmd.OutOrStdout(), state, format); err != nil {
		return err
	}
	if state.Phase == entity.PhaseFailed {
		return errCycleFailed
	}
	return nil
}
