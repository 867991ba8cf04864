package runtime

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// AppendLLMLog appends raw model output to the daily audit file in dir.
// An empty dir disables it.
func AppendLLMLog(dir, runID, step, llmOutput string) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("Error creating logs directory %s: %v", dir, err)
		return
	}

	filename := filepath.Join(dir, time.Now().Format("20060102")+".log")
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}
	defer file.Close()

	logEntry := fmt.Sprintf(
		"Timestamp: %s\n--- Run: %s | Step: %s\n--- LLM Output:\n%s\n\n",
		time.Now().Format(time.RFC3339), runID, step, llmOutput,
	)

	if _, err = file.WriteString(logEntry); err != nil {
		log.Printf("Error writing to log file: %v", err)
	}
}
