package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codelab-edu/codelab-api/internal/models"
)

func buildGenerationPrompt(objectives []string, count int, language string) string {
	var formatted strings.Builder
	for i, obj := range objectives {
		fmt.Fprintf(&formatted, "%d. %s\n", i+1, obj)
	}

	var sb strings.Builder
	sb.WriteString("You are a programming instructor generating structured lab questions.\n\n")
	fmt.Fprintf(&sb, "Generate exactly %d structured programming questions in %s that cover the objectives given below.\n", count, language)
	sb.WriteString("Some questions can cover more than one objective, but make sure each objective is covered in at least one question. ")
	sb.WriteString("The questions should vary in difficulty and complexity, and should test the student's ability to apply concepts from the listed objectives effectively.\n\n")
	fmt.Fprintf(&sb, "Language: %s\nNumber of Questions: %d\n\nObjectives:\n%s\n", language, count, formatted.String())
	fmt.Fprintf(&sb, "Generate exactly %d questions. Each question must contain:\n", count)
	sb.WriteString(`- number (int)
- title (str)
- problem_statement (str)
- input_format (str)
- output_format (str)
- sample_input (str)
- sample_output (str)

Return the entire result as a JSON object following this format:

objective: str
language: str
questions: List[Question]
`)
	return sb.String()
}

func buildFollowupPrompt(parent *models.QuestionPayload, code string) string {
	parentJSON, _ := json.Marshal(parent)

	var sb strings.Builder
	sb.WriteString("You are a programming instructor evaluating a student's understanding of a specific programming concept.\n\n")
	sb.WriteString("Below is the original question given to the student and the code they submitted:\n\n")
	fmt.Fprintf(&sb, "Original Question:\n%s\n\nStudent's Code:\n%s\n\n", parentJSON, code)
	sb.WriteString(`Your task is to generate a follow-up question that directly builds on the student's submitted code. The goal is to test whether the student truly understood the concept by asking them to modify, extend, or refactor their existing code.

DO NOT generate a completely new or unrelated problem.

Here are some examples of what good follow-up questions might look like:

Original Question: Write a function to calculate the factorial of a number using recursion.

Possible Follow-Ups:
1. Refactoring: Change the code to use while loop instead of for loop.
2. New Constraint: Rewrite the function to handle negative inputs with appropriate error handling.
3. Change of Input: Modify the function to calculate the factorial for a list of numbers.
4. Output Format Change: Return the result as a formatted string: "Factorial of 5 is 120".

In your follow-up question, you should apply a similar idea: take the same problem context, and add a twist that makes the student update the code.

Return your final result in the following JSON format as a json object (no explanation, no markdown, just the raw JSON object):
{
    "number": (int),
    "title": (str),
    "problem_statement": (str),
    "input_format": (str),
    "output_format": (str),
    "sample_input": (str),
    "sample_output": (str)
}
`)
	return sb.String()
}

func buildCheckPrompt(question, code, output string) string {
	var sb strings.Builder
	sb.WriteString("You are a programming instructor evaluating a student's submission. Your job is to check if the student's code fulfills all the requirements of the original question, and if the output is correct.\n\n")
	fmt.Fprintf(&sb, "--- Original Question ---\n%s\n\n--- Student's Submitted Code ---\n%s\n\n--- Output Produced by the Code ---\n%s\n\n", question, code, output)
	sb.WriteString(`--- Evaluation Instructions ---
1. Read the question carefully. Check for all required parts:
    - What the function is supposed to do.
    - Required input format (e.g., number of arguments, data types).
    - Expected output format (e.g., type and structure of return value).

2. Check the student code:
    - Does it define the function with the correct name and number/types of parameters?
    - Does the logic correctly solve the problem as stated?
    - Does it return (not just print) the correct result in the correct format?

3. Validate the output:
    - Calculate the expected output based on the arguments used in the student's function call.
    - Compare that with the provided output.
    - If the result is mathematically incorrect or improperly formatted, do NOT approve.

--- Return Your Final Judgment in the Following JSON Format ---

    "Approved": (int) 1 if everything is correct, else 0,
    "Reason": (str) Briefly explain why it's approved or what's wrong addressing the student in reason. (e.g., wrong return type, incorrect logic, wrong function name, etc.)
`)
	return sb.String()
}

func buildHintPrompt(question, code string) string {
	var sb strings.Builder
	sb.WriteString("You are a programming mentor helping a student who is stuck on a problem.\n\n")
	sb.WriteString("Your job is to guide the student using three progressive hints that help them understand and fix their mistake, without giving away the answer directly.\n\n")
	fmt.Fprintf(&sb, "Here is the problem they were trying to solve:\n\n%s\n\n", question)
	sb.WriteString("The student is not getting the expected output.\n\n")
	fmt.Fprintf(&sb, "Here is the code written by the student:\n\n%s\n\n", code)
	sb.WriteString(`Please provide 3 hints in increasing order of specificity:
- Hint 1: A broad-level nudge (conceptual)
- Hint 2: A more focused tip (e.g., what part of the code to look at or rethink)
- Hint 3: A detailed logic hint (almost the solution, but not code)

Return the hints as a JSON object with this format with no additional markdown text:

    "hint_1": "...",
    "hint_2": "...",
    "hint_3": "..."
`)
	return sb.String()
}
