package models

import "fmt"

const testCasesTemplate = `
Generate unit test cases in JSON format for the following Ethereum smart contract. Ensure that the test cases cover various functions and edge cases to thoroughly test the contract's functionality. Include inputs, expected outputs, and any relevant state changes.

Smart Contract Code:

%s

Requirements:

Cover most of the functions from the smart contract.
Include test cases for common scenarios as well as edge cases.
Ensure that the generated JSON format is well-structured and readable.
`

const reformatTemplate = `Given a JSON object containing information about a smart contract and its test cases, convert it into a more readable JSON object. The JSON object is structured as follows:
%s.
The output should include only the extracted test_cases key and its array.
Save the output into a file named '%s'
Ensure that the output maintains clarity and is easy to understand.
You may consider adding appropriate line breaks, indentation, and comments if necessary.
Feel free to make the necessary adjustments for better readability.`

// AgentSystemPrompt puts the reformatting call in zero-shot reasoning mode:
// think about the input, act through the tools, stop once the file is saved.
const AgentSystemPrompt = `
You are an agent designed to restructure JSON documents using the tools you have access to.

Answer the request as best you can. Work in this loop:
- Thought: reason about what to do next.
- Action: call exactly one of the available tools with valid arguments.
- Observation: read the tool result before deciding the next step.

RULES:
- Only the tools can read or write files. Never claim a file was saved unless save_test_cases reported success.
- Comments are not valid JSON. Put readability in key names and structure, not in comments.
- If a tool reports an error, fix the JSON and try again.
- When save_test_cases succeeds, reply with a one-line final answer and call no more tools.
`

// TestCasesPrompt embeds the contract source verbatim in the test generation
// instruction.
func TestCasesPrompt(contract string) []Message {
	return []Message{
		{Role: "user", Content: fmt.Sprintf(testCasesTemplate, contract)},
	}
}

// ReformatPrompt asks the agent to reduce response to its test_cases array
// and save it at outputName.
func ReformatPrompt(response, outputName string) []Message {
	return []Message{
		{Role: "system", Content: AgentSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(reformatTemplate, response, outputName)},
	}
}
