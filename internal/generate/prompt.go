package generate

import (
	"fmt"
	"strings"
)

// promptPreamble states the generator's role and the structural rules the
// task tree must satisfy. Invariants are phrased as plain rules because
// the model sees nothing else.
const promptPreamble = `You are a task tree generator for a workflow execution engine.
Generate a valid JSON array of tasks from natural language requirements.

=== Key Rules ===
1. parent_id = organization only (like folders), does NOT control execution
2. dependencies = execution order (tasks wait for their dependencies)
3. Either ALL tasks have 'id', or NONE do (use name for references if no id)
4. Exactly ONE root task (no parent_id); every parent_id must reference another task
5. Task 'name' must match an available executor ID exactly

=== Task Object Format ===
{
  "name": "executor_id",  // Required: matches an available executor
  "id": "task_1",  // Optional: if used, ALL tasks need id
  "user_id": "user123",  // Optional
  "priority": 1,  // Optional: 0=urgent, 1=high, 2=normal, 3=low
  "inputs": {...},  // Optional: executor input parameters
  "parent_id": "task_0",  // Optional: for organization
  "dependencies": [{"id": "task_0", "required": true}]  // Optional: execution order
}`

// exampleTaskTree is the canonical two-task example showing parent_id
// versus dependencies usage. Kept as a literal so prompts are byte-stable.
const exampleTaskTree = `[
  {
    "id": "task_1",
    "name": "rest_executor",
    "inputs": {"url": "https://api.example.com/data", "method": "GET"}
  },
  {
    "id": "task_2",
    "name": "command_executor",
    "parent_id": "task_1",
    "dependencies": [{"id": "task_1", "required": true}],
    "inputs": {"command": "python process_data.py --input data.json --output result.json"}
  }
]`

// outputInstructions demand a bare JSON array with no surrounding prose.
const outputInstructions = `=== Output Instructions ===
1. Generate realistic, complete task configurations with proper inputs
2. For command_executor: use full commands (e.g., 'python script.py --arg value', not just 'script.py')
3. For rest_executor: use complete URLs and proper HTTP methods
4. Include all required input parameters based on executor schemas
5. Set appropriate dependencies to ensure correct execution order
6. Return ONLY a JSON array, no markdown code blocks, no explanations.

=== Output ===
Return ONLY a JSON array of task objects. No markdown, no explanations.
Ensure: single root, valid references, proper dependencies, complete and realistic inputs.`

// BuildPrompt composes the final prompt in fixed section order. The size
// ceiling is enforced by truncating the context and catalog blocks before
// they arrive here, never by cutting the assembled string: instructions
// and the example stay intact at the expense of bulk content.
func BuildPrompt(requirement, userID, contextBlock, catalogBlock string) string {
	parts := []string{
		promptPreamble,
		"",
		"=== Example ===",
		exampleTaskTree,
		"",
	}

	if contextBlock != "" {
		parts = append(parts, contextBlock, "")
	}

	if catalogBlock != "" {
		parts = append(parts, "=== Available Executors ===", catalogBlock, "")
	}

	parts = append(parts,
		"=== Requirement ===",
		requirement,
		"",
		outputInstructions,
	)

	if userID != "" {
		parts = append(parts, fmt.Sprintf("Use user_id=%q for all tasks.", userID))
	}

	return strings.Join(parts, "\n")
}
