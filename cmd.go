package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"ContractTestGen/app/configs"
	"ContractTestGen/app/contract"
	"ContractTestGen/app/runtime"
)

var errUsage = errors.New("wrong number of arguments")

type options struct {
	configPath string
	envFile    string
	outputPath string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "contract-testgen <path_to_solidity_file>",
		Short: "Generate JSON unit-test cases for a smart contract with an LLM",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "file with environment variables such as OPENAI_API_KEY")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "override the output JSON path")
	return cmd
}

func run(cmd *cobra.Command, opts *options, contractPath string) error {
	if err := contract.Check(contractPath); err != nil {
		return err
	}
	if err := loadEnv(opts.envFile); err != nil {
		return err
	}

	cfg, err := configs.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.outputPath != "" {
		cfg.OutputPath = opts.outputPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := getDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	registry, err := getClients(cfg)
	if err != nil {
		return err
	}
	defer registry.CloseAll()

	rt := runtime.NewRuntime(getModel(cfg, db), db, registry, cfg.RuntimeSettings(), cmd.OutOrStdout())
	_, err = rt.Run(ctx, contractPath)
	return err
}

func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("ℹ️ No env file at %s, using process environment", path)
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
