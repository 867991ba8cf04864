package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"ContractTestGen/app/clients"
	"ContractTestGen/app/contract"
	"ContractTestGen/app/models"
	"ContractTestGen/app/results"
	"ContractTestGen/app/storage"
	"ContractTestGen/app/tools"
)

const (
	ModeAgent = "agent"
	ModeLocal = "local"
)

// Settings holds everything a run needs besides its collaborators.
type Settings struct {
	Completion models.Settings
	Agent      models.Settings
	Mode       string
	OutputPath string
	LogsDir    string
}

// Result is what a successful run produced.
type Result struct {
	RunID     string
	Document  any
	TestCases int
}

type Runtime struct {
	model    models.Interface
	db       storage.Interface
	clients  *clients.Registry
	settings Settings
	out      io.Writer
}

func NewRuntime(model models.Interface, db storage.Interface, registry *clients.Registry, settings Settings,
	out io.Writer) *Runtime {
	if db == nil {
		db = storage.NopStorage{}
	}
	if registry == nil {
		registry = clients.NewRegistry()
	}
	return &Runtime{
		model:    model,
		db:       db,
		clients:  registry,
		settings: settings,
		out:      out,
	}
}

// Run validates and reads the contract, asks the completion model for test
// cases, has them reformatted into the output file, then loads and prints
// that file.
func (r *Runtime) Run(ctx context.Context, contractPath string) (*Result, error) {
	if err := contract.Check(contractPath); err != nil {
		return nil, err
	}
	fmt.Fprintf(r.out, "Success: Found Solidity file at '%s'.\n", contractPath)

	code, err := contract.Read(contractPath)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log.Printf("🚀 Run %s started for %s", runID, contractPath)

	response, err := r.model.Think(ctx, r.settings.Completion, models.TestCasesPrompt(code), runID)
	if err != nil {
		return nil, fmt.Errorf("generate test cases: %w", err)
	}
	fmt.Fprintln(r.out, response)
	AppendLLMLog(r.settings.LogsDir, runID, "completion", response)

	if err = r.reformat(ctx, runID, response); err != nil {
		return nil, err
	}

	doc, err := results.Load(r.settings.OutputPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(r.out, "\n\n\nOutput:...\n\n")
	if err = results.Print(r.out, doc); err != nil {
		return nil, err
	}

	result := &Result{RunID: runID, Document: doc, TestCases: results.Count(doc)}
	r.finish(ctx, contractPath, result)
	return result, nil
}

func (r *Runtime) reformat(ctx context.Context, runID, response string) error {
	if err := results.Reset(r.settings.OutputPath); err != nil {
		return err
	}

	switch r.settings.Mode {
	case ModeLocal:
		doc, n, err := results.Normalize(response)
		if err != nil {
			return fmt.Errorf("normalize test cases: %w", err)
		}
		if err = results.Save(r.settings.OutputPath, doc); err != nil {
			return err
		}
		log.Printf("✅ %d test cases normalized locally into %s", n, r.settings.OutputPath)
		return nil
	case ModeAgent, "":
		toolkit := tools.NewToolkitFromPreset(tools.PresetReformatter, r.settings.OutputPath)
		final, err := r.model.Process(ctx, r.settings.Agent,
			models.ReformatPrompt(response, r.settings.OutputPath), toolkit, runID)
		if err != nil {
			return fmt.Errorf("reformat test cases: %w", err)
		}
		fmt.Fprintln(r.out, final)
		AppendLLMLog(r.settings.LogsDir, runID, "agent", final)
		return nil
	default:
		return fmt.Errorf("unknown reformat mode: %s", r.settings.Mode)
	}
}

// finish records the run and notifies clients. Failures here never fail the
// run: the output file is already in place.
func (r *Runtime) finish(ctx context.Context, contractPath string, result *Result) {
	history, err := r.db.GetHistoryByRunID(ctx, result.RunID)
	if err != nil {
		log.Printf("⚠️ Error reading history for run %s: %v", result.RunID, err)
	} else if len(history) > 0 {
		log.Printf("📚 Run %s recorded %d exchanges:%s", result.RunID, len(history), storage.RecordListToString(history))
	}

	report := clients.Report{
		RunID:        result.RunID,
		ContractPath: contractPath,
		OutputPath:   r.settings.OutputPath,
		TestCases:    result.TestCases,
	}
	if err = r.clients.NotifyAll(ctx, report); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("⚠️ Error notifying clients: %v", err)
	}
}
