package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"mindwell/adapters/report"
	"mindwell/adapters/tabular"
	"mindwell/app"
	"mindwell/domain/table"
	"mindwell/internal"
	"mindwell/internal/config"
)

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	reader := tabular.NewReader(cfg.Data.File, cfg.Data.SheetName, table.SurveySchema())
	raw, err := reader.Read()
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}
	logger.Info("loaded %d rows from %s", raw.RowCount(), cfg.Data.File)

	service := app.NewAnalysisService(cfg.Analysis, logger)
	run, err := service.Run(context.Background(), raw)
	if err != nil {
		log.Fatalf("analysis: %v", err)
	}

	report.NewWriter(os.Stdout).WriteConsole(run)

	if cfg.Report.MarkdownFile != "" {
		if err := os.WriteFile(cfg.Report.MarkdownFile, []byte(report.Markdown(run)), 0o644); err != nil {
			logger.Error("write markdown report: %v", err)
		} else {
			logger.Info("markdown report written to %s", cfg.Report.MarkdownFile)
		}
	}
	if cfg.Report.HTMLFile != "" {
		if err := os.WriteFile(cfg.Report.HTMLFile, report.HTML(run), 0o644); err != nil {
			logger.Error("write html report: %v", err)
		} else {
			logger.Info("html report written to %s", cfg.Report.HTMLFile)
		}
	}
}
