package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/wso2/customer-360-pipeline/internal/pipeline"
	"github.com/wso2/customer-360-pipeline/internal/system/config"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
)

func main() {
	crmPath := flag.String("crm", "", "Path to the CRM leads CSV file")
	webPath := flag.String("web", "", "Path to the web activity JSON Lines file")
	txPath := flag.String("tx", "", "Path to the pipe-delimited transactions file")
	outDir := flag.String("outdir", "", "Output directory for the Customer 360 artifacts")
	configPath := flag.String("config", "", "Path to the pipeline configuration file")
	flag.Parse()

	envFiles, err := filepath.Glob("config/*.env")
	if err == nil && len(envFiles) > 0 {
		_ = godotenv.Load(envFiles...)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override config file values.
	if *crmPath != "" {
		cfg.Sources.CRM = *crmPath
	}
	if *webPath != "" {
		cfg.Sources.Web = *webPath
	}
	if *txPath != "" {
		cfg.Sources.Transactions = *txPath
	}
	if *outDir != "" {
		cfg.Output.Directory = *outDir
	}

	if err := log.Init(cfg.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(cfg)
	if err != nil {
		log.GetLogger().Error("Pipeline run failed", log.Error(err))
		fmt.Fprintf(os.Stderr, "Customer 360 ETL failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Customer 360 ETL completed: %d customers written to %s (%d transactions rejected, %d rows skipped)\n",
		result.Customers, result.OutputPath, result.Rejections, result.SkippedRows+result.InvalidRows)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors2.NewRunError(errors2.ConfigLoadFailed, err)
	}
	return cfg, nil
}
